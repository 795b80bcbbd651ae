package stats

import (
	"ChatPulse/entity"
	"ChatPulse/internal/lib/sl"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/xuri/excelize/v2"
	"log/slog"
	"net/http"
)

// Export streams the open-chat details as an xlsx workbook.
func Export(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.stats")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		metrics, err := handler.OpenChatMetrics(r.Context(), entity.StatsFilter{})
		if err != nil {
			logger.Error("failed to compute metrics", sl.Err(err))
			http.Error(w, fmt.Sprintf("Failed to compute metrics: %v", err), http.StatusBadGateway)
			return
		}

		f := excelize.NewFile()
		sheet := "OpenChats"
		f.NewSheet(sheet)

		headers := []string{"Chat ID", "Name", "Type", "Age (hours)", "Urgency", "Needs reply", "Assigned to", "Last activity"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, d := range metrics.OpenChatDetails {
			values := []interface{}{
				d.ChatId, d.ChatName, string(d.ChatType), d.AgeInHours,
				string(d.UrgencyLevel), d.RequiresResponse, d.AssignedTo, d.LastActivity,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="open_chats.xlsx"`)
		w.WriteHeader(http.StatusOK)
		if err := f.Write(w); err != nil {
			logger.Error("failed to write excel file", sl.Err(err))
			http.Error(w, "Failed to generate Excel", http.StatusInternalServerError)
			return
		}

		logger.Info("excel file with open chats sent successfully")
	}
}
