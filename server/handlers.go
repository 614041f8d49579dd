package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/fare"
	"github.com/theoremus-urban-solutions/transit-fares/network"
	"github.com/theoremus-urban-solutions/transit-fares/planner"
	"github.com/theoremus-urban-solutions/transit-fares/utils"
)

type healthResponse struct {
	Status      string `json:"status"`
	Stations    int    `json:"stations"`
	Lines       int    `json:"lines"`
	Connections int    `json:"connections"`
}

type stationResponse struct {
	network.Station
	Lines []string `json:"lines"`
}

type quoteResponse struct {
	Quote planner.Quote `json:"quote"`
	State fare.State    `json:"state"`
}

type errorBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	net := s.planner.Network()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Stations:    net.StationCount(),
		Lines:       net.LineCount(),
		Connections: net.ConnectionCount(),
	})
}

func (s *Server) handleStations(w http.ResponseWriter, _ *http.Request) {
	net := s.planner.Network()
	out := make([]stationResponse, 0, net.StationCount())
	for _, st := range net.Stations() {
		out = append(out, stationResponse{Station: st, Lines: net.LinesAt(st.ID)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	from, to, at, err := routeParams(r, s.planner.Network(), s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	q, next, err := s.planner.Plan(fare.State{}, from, to, at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{Quote: q, State: next})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, &queryError{msg: "Malformed request body: " + err.Error()})
		return
	}
	if err := req.normalize(s.planner.Network()); err != nil {
		writeError(w, err)
		return
	}
	at, err := utils.ParseTimestamp(req.At, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	q, next, err := s.planner.Plan(req.State, req.From, req.To, at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{Quote: q, State: next})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) (int, string) {
	var qe *queryError
	switch {
	case errors.As(err, &qe):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, errs.ErrInvalidTime):
		return http.StatusBadRequest, errs.Kind(err)
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, errs.Kind(err)
	case errors.Is(err, errs.ErrNoRouteFound):
		return http.StatusUnprocessableEntity, errs.Kind(err)
	default:
		return http.StatusInternalServerError, errs.Kind(err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := statusFor(err)
	var body errorBody
	body.Error.Kind = kind
	body.Error.Message = err.Error()
	writeJSON(w, status, body)
}
