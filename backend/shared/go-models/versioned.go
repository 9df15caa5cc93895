// go-models/versioned.go
package models

// Versioned adds optimistic‑lock helpers. Embed it anonymously.
//
// RowVersion is the opaque version token handed to clients. The store bumps
// it on every successful write; clients send back the value they last saw.
type Versioned struct {
	RowVersion int64 `json:"row_version"`
}

// InitialRowVersion is the token a freshly inserted row starts with.
const InitialRowVersion int64 = 1

// ----- interface helpers -----
func (v *Versioned) GetRowVersion() int64  { return v.RowVersion }
func (v *Versioned) SetRowVersion(n int64) { v.RowVersion = n }
