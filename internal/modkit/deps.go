// Package modkit provides module wiring and core deps
package modkit

import (
	"firstvibe/internal/modkit/repokit"
	"firstvibe/internal/platform/config"
	"firstvibe/internal/platform/logger"
	"firstvibe/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// backend seams are nil when the backend is disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
	KV  store.KV
}

// FromStore copies the opened backends of st into Deps
func FromStore(cfg config.Conf, st *store.Store) Deps {
	d := Deps{Cfg: cfg}
	if st == nil {
		return d
	}
	d.Log = st.Log
	d.PG = st.PG
	d.CH = st.CH
	d.KV = st.KV
	return d
}

// Backends lists the non nil backend seams by name for readiness checks
func (d Deps) Backends() map[string]any {
	out := map[string]any{}
	if d.PG != nil {
		out["pg"] = d.PG
	}
	if d.CH != nil {
		out["clickhouse"] = d.CH
	}
	if d.KV != nil {
		out["redis"] = d.KV
	}
	return out
}
