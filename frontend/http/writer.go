package http

import (
	"net/http"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"

	"github.com/chihaya/brng/frontend"
	"github.com/chihaya/brng/pkg/log"
)

type engineInfo struct {
	Name string
	Bits uint
	Min  uint64
	Max  uint64
}

type enginesResponse struct {
	Engines []engineInfo
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (v enginesResponse) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"engines":[`)
	for i, e := range v.Engines {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawString(`{"name":`)
		w.String(e.Name)
		w.RawString(`,"bits":`)
		w.Uint(e.Bits)
		w.RawString(`,"min":`)
		w.Uint64(e.Min)
		w.RawString(`,"max":`)
		w.Uint64(e.Max)
		w.RawByte('}')
	}
	w.RawString(`]}`)
}

type valuesResponse struct {
	Engine string
	Bits   uint
	Values []uint64
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (v valuesResponse) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"engine":`)
	w.String(v.Engine)
	w.RawString(`,"bits":`)
	w.Uint(v.Bits)
	w.RawString(`,"values":`)
	writeValues(w, v.Values)
	w.RawByte('}')
}

type streamResponse struct {
	Name     string
	Position int64
	Values   []uint64
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (v streamResponse) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"name":`)
	w.String(v.Name)
	w.RawString(`,"position":`)
	w.Int64(v.Position)
	if v.Values != nil {
		w.RawString(`,"values":`)
		writeValues(w, v.Values)
	}
	w.RawByte('}')
}

type streamsResponse struct {
	Streams []string
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (v streamsResponse) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"streams":[`)
	for i, name := range v.Streams {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(name)
	}
	w.RawString(`]}`)
}

type errorResponse struct {
	Error string
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (v errorResponse) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"error":`)
	w.String(v.Error)
	w.RawByte('}')
}

func writeValues(w *jwriter.Writer, values []uint64) {
	w.RawByte('[')
	for i, x := range values {
		if i > 0 {
			w.RawByte(',')
		}
		w.Uint64(x)
	}
	w.RawByte(']')
}

// WriteResponse writes v as JSON with the given status code.
func WriteResponse(w http.ResponseWriter, status int, v easyjson.Marshaler) error {
	jw := jwriter.Writer{}
	v.MarshalEasyJSON(&jw)
	if jw.Error != nil {
		return jw.Error
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := jw.DumpTo(w)
	return err
}

// WriteError communicates an error to a client over HTTP.
func WriteError(w http.ResponseWriter, err error) error {
	message := "internal server error"
	status := http.StatusInternalServerError
	if _, clientErr := err.(frontend.ClientError); clientErr {
		message = err.Error()
		switch err {
		case frontend.ErrUnknownEngine, frontend.ErrUnknownStream:
			status = http.StatusNotFound
		case frontend.ErrStreamConflict:
			status = http.StatusConflict
		default:
			status = http.StatusBadRequest
		}
	} else {
		log.Error("http: internal error", log.Err(err))
	}

	return WriteResponse(w, status, errorResponse{Error: message})
}
