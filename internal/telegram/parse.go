package telegram

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// addRequest is the parsed form of the /add command arguments.
type addRequest struct {
	Symbol string
	Buy    float64
	Target float64
	Stop   float64
	Notes  string
}

var (
	buyRegex    = regexp.MustCompile(`buy=([0-9.]+)`)
	targetRegex = regexp.MustCompile(`target=([0-9.]+)`)
	stopRegex   = regexp.MustCompile(`stop=([0-9.]+)`)
	notesRegex  = regexp.MustCompile(`notes=(.+?)(?:\s+(?:buy|target|stop)=|$)`)
)

// parseAddArgs parses "SYMBOL buy=XX target=YY stop=ZZ notes=TEXT".
func parseAddArgs(args string) (addRequest, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return addRequest{}, fmt.Errorf("missing stock symbol")
	}

	req := addRequest{Symbol: strings.ToUpper(fields[0])}

	buyMatch := buyRegex.FindStringSubmatch(args)
	targetMatch := targetRegex.FindStringSubmatch(args)
	stopMatch := stopRegex.FindStringSubmatch(args)
	if buyMatch == nil || targetMatch == nil || stopMatch == nil {
		return addRequest{}, fmt.Errorf("missing parameters: buy=XX target=YY stop=ZZ are required")
	}

	var err error
	if req.Buy, err = strconv.ParseFloat(buyMatch[1], 64); err != nil {
		return addRequest{}, fmt.Errorf("invalid buy price %q", buyMatch[1])
	}
	if req.Target, err = strconv.ParseFloat(targetMatch[1], 64); err != nil {
		return addRequest{}, fmt.Errorf("invalid target price %q", targetMatch[1])
	}
	if req.Stop, err = strconv.ParseFloat(stopMatch[1], 64); err != nil {
		return addRequest{}, fmt.Errorf("invalid stop price %q", stopMatch[1])
	}

	if m := notesRegex.FindStringSubmatch(args); m != nil {
		req.Notes = strings.TrimSpace(m[1])
	}

	return req, nil
}
