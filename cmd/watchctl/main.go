// watchctl manages the watchlist database directly, without the bot.
//
//	watchctl -db data/watchlist.db list
//	watchctl -db data/watchlist.db add RELIANCE 2500 2800 2350 [notes...]
//	watchctl -db data/watchlist.db remove RELIANCE
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yashtriyar/stock-watchlist-bot/internal/logger"
	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

func main() {
	dbPath := flag.String("db", "data/watchlist.db", "path to SQLite database")
	flag.Parse()

	log := logger.New("info")

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	db, err := watchlist.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	repo := watchlist.NewRepository(db)

	switch args[0] {
	case "list":
		positions, err := repo.GetAll()
		if err != nil {
			log.Fatalf("load watchlist: %v", err)
		}
		if len(positions) == 0 {
			fmt.Println("watchlist is empty")
			return
		}
		fmt.Printf("%-12s %10s %10s %10s %10s %8s\n",
			"SYMBOL", "BUY", "TARGET", "STOP", "CURRENT", "P&L%")
		for _, p := range positions {
			fmt.Printf("%-12s %10.2f %10.2f %10.2f %10.2f %+7.1f%%\n",
				p.Symbol, p.BuyPrice, p.TargetPrice, p.StopLoss, p.CurrentPrice, p.PnLPercent())
		}

	case "add":
		if len(args) < 5 {
			usage()
		}
		buy := parsePrice(log, "buy", args[2])
		target := parsePrice(log, "target", args[3])
		stop := parsePrice(log, "stop", args[4])

		pos := &watchlist.Position{
			Symbol:      args[1],
			BuyPrice:    buy,
			TargetPrice: target,
			StopLoss:    stop,
			Notes:       strings.Join(args[5:], " "),
		}
		if err := repo.Add(pos); err != nil {
			log.Fatalf("add %s: %v", pos.Symbol, err)
		}
		fmt.Printf("added %s (buy %.2f, target %.2f, stop %.2f)\n",
			pos.Symbol, buy, target, stop)

	case "remove":
		if len(args) < 2 {
			usage()
		}
		symbol := watchlist.NormalizeSymbol(args[1])
		if err := repo.Remove(symbol); err != nil {
			log.Fatalf("remove %s: %v", symbol, err)
		}
		fmt.Printf("removed %s\n", symbol)

	default:
		usage()
	}
}

func parsePrice(log *logger.Logger, name, value string) float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("invalid %s price %q", name, value)
	}
	return v
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: watchctl [-db path] list | add SYMBOL BUY TARGET STOP [notes...] | remove SYMBOL")
	os.Exit(2)
}
