package resolver

import "encoding/json"

// Used records the candidate that produced each partition's result.
type Used struct {
	Audio string `json:"audio"`
	Video string `json:"video"`
}

// Details splits the total by partition.
type Details struct {
	AudioTotal int `json:"audioTotal"`
	VideoTotal int `json:"videoTotal"`
}

// MediumStatus is the answer to one lookup. A failed lookup carries only OK
// and Error.
type MediumStatus struct {
	OK      bool     `json:"ok"`
	Query   string   `json:"query"`
	Found   bool     `json:"found"`
	Total   int      `json:"total"`
	Used    Used     `json:"used"`
	Details Details  `json:"details"`
	Items   []string `json:"items"`
	Error   string   `json:"error,omitempty"`
}

// Failure builds the status reported for a failed lookup.
func Failure(err error) MediumStatus {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return MediumStatus{OK: false, Error: msg}
}

type failureWire struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// MarshalJSON emits {ok:false, error} for failures and the full shape otherwise.
func (s MediumStatus) MarshalJSON() ([]byte, error) {
	if !s.OK {
		return json.Marshal(failureWire{OK: false, Error: s.Error})
	}
	type wire MediumStatus
	w := wire(s)
	if w.Items == nil {
		w.Items = []string{}
	}
	return json.Marshal(w)
}
