// Package ipc defines the newline-delimited JSON protocol a restricted
// bot subprocess speaks over stdin/stdout. Grounded on a bot-server's
// WebSocket Message envelope, narrowed from a pub/sub event stream to
// a single blocking request/response exchange per decision.
package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/foldline/holdem-engine/internal/deck"
	"github.com/foldline/holdem-engine/internal/engine"
)

// DecisionRequest is written to a bot subprocess's stdin once per
// decision it owes the table.
type DecisionRequest struct {
	Seat      int                      `json:"seat"`
	State     *engine.PublicGameState  `json:"state"`
	HoleCards [2]deck.Card             `json:"holeCards"`
}

// DecisionResponse is read back from the subprocess's stdout.
type DecisionResponse struct {
	ActionType engine.ActionType `json:"actionType"`
	Amount     int               `json:"amount"`
}

// Encoder writes newline-delimited JSON frames to a subprocess's stdin.
type Encoder struct {
	w *bufio.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

func (e *Encoder) WriteRequest(req DecisionRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding decision request: %w", err)
	}
	if _, err := e.w.Write(data); err != nil {
		return err
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return err
	}
	return e.w.Flush()
}

// Decoder reads newline-delimited JSON frames from a subprocess's
// stdout. One line is one response.
type Decoder struct {
	scanner *bufio.Scanner
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{scanner: bufio.NewScanner(r)}
}

// ReadResponse blocks for the next line and decodes it. Returns
// io.EOF when the subprocess has closed stdout.
func (d *Decoder) ReadResponse() (DecisionResponse, error) {
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			return DecisionResponse{}, err
		}
		return DecisionResponse{}, io.EOF
	}
	var resp DecisionResponse
	if err := json.Unmarshal(d.scanner.Bytes(), &resp); err != nil {
		return DecisionResponse{}, fmt.Errorf("decoding decision response: %w", err)
	}
	return resp, nil
}
