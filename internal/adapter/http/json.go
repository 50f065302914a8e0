package http

import "github.com/shopspring/decimal"

// Money goes over the wire as JSON numbers. Requests may still send strings.
func init() { decimal.MarshalJSONWithoutQuotes = true }
