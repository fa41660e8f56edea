package web

import (
	"html/template"
	"net/http"

	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

type WatchedStock struct {
	Symbol       string
	BuyPrice     float64
	TargetPrice  float64
	StopLoss     float64
	CurrentPrice float64
	PnLPercent   float64
	Notes        string
}

type RecentAlert struct {
	Symbol   string
	Kind     string
	Priority string
	Time     string
}

type DashboardData struct {
	Stocks         []WatchedStock
	RecentAlerts   []RecentAlert
	PositionsCount int
	Profitable     int
	AvgPnL         float64
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := DashboardData{}

	positions, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("load watchlist for dashboard", "error", err)
	} else {
		data.Stocks = toWatchedStocks(positions)
		data.PositionsCount = len(positions)

		var sum float64
		for _, st := range data.Stocks {
			sum += st.PnLPercent
			if st.PnLPercent > 0 {
				data.Profitable++
			}
		}
		if len(positions) > 0 {
			data.AvgPnL = sum / float64(len(positions))
		}
	}

	for _, a := range s.engine.Recent(20) {
		data.RecentAlerts = append(data.RecentAlerts, RecentAlert{
			Symbol:   a.Symbol,
			Kind:     a.Kind.Title(),
			Priority: string(a.Priority),
			Time:     a.Timestamp.Format("01/02 15:04"),
		})
	}

	tmpl, err := template.ParseFiles("templates/dashboard.html")
	if err != nil {
		s.logger.Error("parse template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("execute template", "error", err)
	}
}

func toWatchedStocks(positions []watchlist.Position) []WatchedStock {
	out := make([]WatchedStock, 0, len(positions))
	for _, p := range positions {
		out = append(out, WatchedStock{
			Symbol:       p.Symbol,
			BuyPrice:     p.BuyPrice,
			TargetPrice:  p.TargetPrice,
			StopLoss:     p.StopLoss,
			CurrentPrice: p.CurrentPrice,
			PnLPercent:   p.PnLPercent(),
			Notes:        p.Notes,
		})
	}
	return out
}
