package query

import (
	"github.com/flowlens/tplog/codecdecoder"
	"github.com/flowlens/tplog/template"
	"github.com/flowlens/tplog/tplindex"
)

// Router provides a fast path that bypasses Bloom probing entirely when
// the caller already knows which event it wants: the packet table's
// eidset lets it skip straight to the packets that can contain the
// event, the same way DecodeSelected does.
type Router struct {
	idx  *tplindex.Index
	bank *template.Bank
}

// NewRouter builds a Router over an already-built index and bank.
func NewRouter(idx *tplindex.Index, bank *template.Bank) *Router {
	return &Router{idx: idx, bank: bank}
}

// RouteByTemplate returns every decoded line for eventID, using the
// packet table's eidset to visit only packets that can contain it,
// skipping the Bloom probe and substring verification entirely since
// eidset membership is already exact.
func (r *Router) RouteByTemplate(eventID uint64) ([]codecdecoder.Line, error) {
	return codecdecoder.DecodeSelected(r.idx, r.bank, eventID)
}
