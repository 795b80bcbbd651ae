package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"ChatPulseBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	OpenAI struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		Model   string `yaml:"model" env-default:"gpt-4o-mini"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"openai"`
	Whapi struct {
		BaseUrl  string `yaml:"base_url" env-default:"https://gate.whapi.cloud"`
		Token    string `yaml:"token" env-default:""`
		Phone    string `yaml:"phone" env-default:""`
		PageSize int    `yaml:"page_size" env-default:"100"`
	} `yaml:"whapi"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:""`
	} `yaml:"mongo"`
	Policy struct {
		BusinessOverdueHours float64 `yaml:"business_overdue_hours" env-default:"12"`
		UserOverdueHours     float64 `yaml:"user_overdue_hours" env-default:"24"`
		GroupOverdueHours    float64 `yaml:"group_overdue_hours" env-default:"48"`

		BusinessNoMessageHours float64 `yaml:"business_no_message_hours" env-default:"48"`
		UserNoMessageHours     float64 `yaml:"user_no_message_hours" env-default:"72"`
		GroupNoMessageHours    float64 `yaml:"group_no_message_hours" env-default:"96"`

		SupportPhones []string `yaml:"support_phones" env-default:""`
	} `yaml:"policy"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
