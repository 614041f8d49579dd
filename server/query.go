package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/fare"
	"github.com/theoremus-urban-solutions/transit-fares/network"
	"github.com/theoremus-urban-solutions/transit-fares/utils"
)

// queryError is a malformed request.
type queryError struct{ msg string }

func (e *queryError) Error() string { return e.msg }

// quoteRequest is the body of POST /api/quote.
type quoteRequest struct {
	From  string     `json:"from"`
	To    string     `json:"to"`
	At    string     `json:"at"`
	State fare.State `json:"state"`
}

func (q *quoteRequest) normalize(net *network.Network) error {
	if err := q.State.Validate(); err != nil {
		return &queryError{msg: "Invalid fare state: " + err.Error() + "."}
	}
	var err error
	if q.From, err = ensureStation(net, "from", q.From); err != nil {
		return err
	}
	q.To, err = ensureStation(net, "to", q.To)
	return err
}

// routeParams reads from, to and at from the query string.
func routeParams(r *http.Request, net *network.Network, now time.Time) (string, string, time.Time, error) {
	v := r.URL.Query()
	from, err := ensureStation(net, "from", v.Get("from"))
	if err != nil {
		return "", "", time.Time{}, err
	}
	to, err := ensureStation(net, "to", v.Get("to"))
	if err != nil {
		return "", "", time.Time{}, err
	}
	at, err := utils.ParseTimestamp(v.Get("at"), now)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return from, to, at, nil
}

// ensureStation accepts an exact or upper-cased station id.
func ensureStation(net *network.Network, param, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", &queryError{msg: "You must provide " + param + "."}
	}
	if net.HasStation(id) {
		return id, nil
	}
	if up := strings.ToUpper(id); net.HasStation(up) {
		return up, nil
	}
	return "", errs.NotFound("station", id)
}
