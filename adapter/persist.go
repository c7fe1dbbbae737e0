package adapter

import (
	"io"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/framelearn/core/model"
	"github.com/YuminosukeSato/framelearn/pkg/errors"
	"github.com/YuminosukeSato/framelearn/pkg/log"
)

// Snapshot is the persisted form of an adapted estimator.
type Snapshot struct {
	// ID identifies one Persist call. It is not used by Reconstruct.
	ID                string                 `json:"id,omitempty" yaml:"id,omitempty"`
	Kind              string                 `json:"kind" yaml:"kind"`
	ColumnRestoration bool                   `json:"column_restoration" yaml:"column_restoration"`
	Params            map[string]interface{} `json:"params" yaml:"params"`
}

// Persist captures the kind, overlay and parameters of p.
func (r *Registry) Persist(p *Proxy) (*Snapshot, error) {
	kind, ok := r.KindOf(p)
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownKind, "%s", p.Table().Owner())
	}
	params := p.GetParams(true)
	if params == nil {
		params = map[string]interface{}{}
	}
	snap := &Snapshot{ID: uuid.New().String(), Kind: kind, ColumnRestoration: p.Restored(), Params: params}
	r.logger.Debug("persisted",
		log.OperationKey, log.OperationPersist,
		log.EstimatorKindKey, kind,
		log.SnapshotIDKey, snap.ID,
		log.HyperParamsKey, params,
	)
	return snap, nil
}

// Reconstruct rebuilds an adapted estimator from s. The steps run in a fixed
// order: instantiate and adapt the base kind, reapply column restoration,
// restore the saved parameters.
func (r *Registry) Reconstruct(s *Snapshot) (*Proxy, error) {
	if s == nil {
		return nil, errors.NewValidationError("snapshot", "must not be nil", nil)
	}
	est, err := r.New(s.Kind)
	if err != nil {
		return nil, err
	}
	proxy := Adapt(est, r.opts...)

	if s.ColumnRestoration {
		if !proxy.Capabilities().Has(TransformCapability | SupportMaskCapability) {
			return nil, errors.NewValidationError(s.Kind, "column restoration requires Transform and GetSupport", proxy.Table().Owner())
		}
		proxy = Adapt(proxy, WithColumnRestoration())
	}

	if len(s.Params) > 0 {
		if err := proxy.SetParams(s.Params); err != nil {
			return nil, err
		}
	}
	r.logger.Debug("reconstructed",
		log.OperationKey, log.OperationReconstruct,
		log.EstimatorKindKey, s.Kind,
		log.SnapshotIDKey, s.ID,
		"column_restoration", proxy.Restored(),
	)
	return proxy, nil
}

// Save writes the snapshot of p to w as JSON.
func (r *Registry) Save(w io.Writer, p *Proxy) error {
	snap, err := r.Persist(p)
	if err != nil {
		return err
	}
	return model.SaveModelToWriter(snap, w)
}

// Load reads a JSON snapshot from rd and reconstructs it.
func (r *Registry) Load(rd io.Reader) (*Proxy, error) {
	var snap Snapshot
	if err := model.LoadModelFromReader(&snap, rd); err != nil {
		return nil, err
	}
	return r.Reconstruct(&snap)
}

// SaveFile writes the snapshot of p to filename.
func (r *Registry) SaveFile(filename string, p *Proxy) error {
	snap, err := r.Persist(p)
	if err != nil {
		return err
	}
	return model.SaveModel(snap, filename)
}

// LoadFile reads a snapshot from filename and reconstructs it.
func (r *Registry) LoadFile(filename string) (*Proxy, error) {
	var snap Snapshot
	if err := model.LoadModel(&snap, filename); err != nil {
		return nil, err
	}
	return r.Reconstruct(&snap)
}
