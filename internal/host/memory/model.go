// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package memory is an in-memory building model loaded from a YAML file. It
// implements host.Model with real transaction semantics: mutations are
// only accepted inside a transaction, and Rollback restores a msgpack
// snapshot of the state taken when the transaction began.
package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/extract-geometry/internal/host"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

var (
	ErrNoTransaction   = errors.New("model modification outside of a transaction")
	ErrTransactionOpen = errors.New("a transaction is already open")
	ErrNeedsRegenerate = errors.New("model has pending changes; regenerate before reading geometry")
	ErrNotFound        = errors.New("element not found")
)

var openingCategories = []string{
	"Ceiling Openings",
	"Floor Openings",
	"Shaft Openings",
	"Roof Openings",
	"Arc Wall Rectangular Openings",
	"Column Openings",
	"Rectangular Straight Wall Openings",
}

var hostableCategories = []string{
	"Doors",
	"Windows",
	"Generic Models",
}

// Categories whose joins can be disallowed.
var joinableCategories = []string{
	"Walls",
	"Structural Framing",
}

type parameterState struct {
	Name    string           `msgpack:"name"`
	Storage host.StorageKind `msgpack:"storage"`
	YesNo   bool             `msgpack:"yes_no"`
	Length  bool             `msgpack:"length"`
	Double  float64          `msgpack:"double"`
	Integer int64            `msgpack:"integer"`
	Text    string           `msgpack:"text"`
	ID      types.ElementID  `msgpack:"id"`
	Display string           `msgpack:"display"`
}

type elementState struct {
	ID           types.ElementID  `msgpack:"id"`
	UniqueID     string           `msgpack:"unique_id"`
	Category     string           `msgpack:"category"`
	Name         string           `msgpack:"name"`
	LevelID      types.ElementID  `msgpack:"level_id"`
	TypeID       types.ElementID  `msgpack:"type_id"`
	HostID       types.ElementID  `msgpack:"host_id"`
	Location     *curveSpec       `msgpack:"location"`
	Flipped      bool             `msgpack:"flipped"`
	Width        float64          `msgpack:"width"`
	Pinned       bool             `msgpack:"pinned"`
	JoinsAllowed bool             `msgpack:"joins_allowed"`
	Geometry     []objectSpec     `msgpack:"geometry"`
	Parameters   []parameterState `msgpack:"parameters"`
}

type state struct {
	Elements []elementState `msgpack:"elements"`
}

// Model is an in-memory host.Model. It is not safe for concurrent use.
type Model struct {
	display Display
	st      state
	index   map[types.ElementID]int

	inTx     bool
	txName   string
	snapshot []byte

	// dirty is set by mutations and cleared by Regenerate.
	dirty bool
}

var _ host.Model = (*Model)(nil)

// LoadFile reads a model from a YAML file.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}
	return m, nil
}

// Parse builds a model from YAML.
func Parse(data []byte) (*Model, error) {
	var file fileSpec
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing model YAML: %w", err)
	}

	display := DefaultDisplay
	if file.Display.LengthUnit != "" {
		display = file.Display
	}
	if err := display.validate(); err != nil {
		return nil, err
	}

	m := &Model{display: display}
	seen := make(map[types.ElementID]bool, len(file.Elements))
	for _, es := range file.Elements {
		if seen[es.ID] {
			return nil, fmt.Errorf("duplicate element id %d", es.ID)
		}
		seen[es.ID] = true
		st, err := es.toState()
		if err != nil {
			return nil, err
		}
		m.st.Elements = append(m.st.Elements, st)
	}
	m.reindex()
	return m, nil
}

// SetDisplay overrides the display rules read from the model file.
func (m *Model) SetDisplay(d Display) error {
	if err := d.validate(); err != nil {
		return err
	}
	m.display = d
	return nil
}

func (m *Model) reindex() {
	m.index = make(map[types.ElementID]int, len(m.st.Elements))
	for i, e := range m.st.Elements {
		m.index[e.ID] = i
	}
}

func (m *Model) element(id types.ElementID) (*elementState, error) {
	i, ok := m.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return &m.st.Elements[i], nil
}

func (m *Model) handle(e *elementState) host.Element {
	h := host.Element{
		ID:       e.ID,
		UniqueID: e.UniqueID,
		Category: e.Category,
		Name:     e.Name,
		LevelID:  e.LevelID,
		TypeID:   e.TypeID,
		HostID:   e.HostID,
		Flipped:  e.Flipped,
		Width:    e.Width,
	}
	if e.Location != nil {
		h.Location = e.Location.curve()
	}
	return h
}

func (m *Model) collect(match func(e *elementState) bool) []host.Element {
	var out []host.Element
	for i := range m.st.Elements {
		if match(&m.st.Elements[i]) {
			out = append(out, m.handle(&m.st.Elements[i]))
		}
	}
	return out
}

// CollectElements returns the elements of one category in model order.
func (m *Model) CollectElements(category types.Category) ([]host.Element, error) {
	name := category.HostName()
	return m.collect(func(e *elementState) bool { return e.Category == name }), nil
}

// CollectOpenings returns the elements of every opening category.
func (m *Model) CollectOpenings() ([]host.Element, error) {
	return m.collect(func(e *elementState) bool {
		return slices.Contains(openingCategories, e.Category)
	}), nil
}

// CollectHostedInstances returns doors, windows and generic models that
// have a host.
func (m *Model) CollectHostedInstances() ([]host.Element, error) {
	return m.collect(func(e *elementState) bool {
		return e.HostID.Valid() && slices.Contains(hostableCategories, e.Category)
	}), nil
}

// Geometry returns the element's geometry as of the last regeneration.
// Edges produced by deleted cutters or by disallowed joins are omitted.
func (m *Model) Geometry(id types.ElementID, opts host.GeometryOptions) (host.GeometryElement, error) {
	if m.dirty {
		return nil, ErrNeedsRegenerate
	}
	e, err := m.element(id)
	if err != nil {
		return nil, err
	}
	return m.objects(e, e.Geometry), nil
}

func (m *Model) objects(owner *elementState, specs []objectSpec) host.GeometryElement {
	var out host.GeometryElement
	for _, o := range specs {
		switch {
		case o.Solid != nil:
			solid := &host.Solid{}
			for _, c := range o.Solid.Edges {
				if m.edgeVisible(owner, c) {
					solid.Edges = append(solid.Edges, c.curve())
				}
			}
			out = append(out, solid)
		case o.Instance != nil:
			out = append(out, &host.Instance{Objects: m.objects(owner, o.Instance.Objects)})
		}
	}
	return out
}

func (m *Model) edgeVisible(owner *elementState, c curveSpec) bool {
	if c.CutBy != nil {
		if _, ok := m.index[*c.CutBy]; !ok {
			return false
		}
	}
	if c.Join && !owner.JoinsAllowed {
		return false
	}
	return true
}

// Parameters returns every parameter of the element.
func (m *Model) Parameters(id types.ElementID) ([]host.Parameter, error) {
	e, err := m.element(id)
	if err != nil {
		return nil, err
	}
	out := make([]host.Parameter, 0, len(e.Parameters))
	for _, p := range e.Parameters {
		out = append(out, m.parameter(p))
	}
	return out, nil
}

// Parameter returns the named parameter; ok is false when the element has none.
func (m *Model) Parameter(id types.ElementID, name string) (host.Parameter, bool, error) {
	e, err := m.element(id)
	if err != nil {
		return host.Parameter{}, false, err
	}
	for _, p := range e.Parameters {
		if p.Name == name {
			return m.parameter(p), true, nil
		}
	}
	return host.Parameter{}, false, nil
}

func (m *Model) parameter(p parameterState) host.Parameter {
	hp := host.Parameter{
		Name:    p.Name,
		Storage: p.Storage,
		YesNo:   p.YesNo,
		Double:  p.Double,
		Integer: p.Integer,
		Text:    p.Text,
		ID:      p.ID,
		Display: p.Display,
	}
	if hp.Display != "" {
		return hp
	}
	switch p.Storage {
	case host.StorageDouble:
		if p.Length {
			hp.Display = m.display.formatLength(p.Double)
		} else {
			hp.Display = m.display.formatNumber(p.Double)
		}
	case host.StorageInteger:
		if p.YesNo {
			hp.Display = map[bool]string{true: "Yes", false: "No"}[p.Integer != 0]
		} else {
			hp.Display = m.display.formatInteger(p.Integer)
		}
	case host.StorageString:
		hp.Display = p.Text
	case host.StorageElementID:
		hp.Display = m.referenceName(p.ID)
	}
	return hp
}

func (m *Model) referenceName(id types.ElementID) string {
	if !id.Valid() {
		return "None"
	}
	if e, err := m.element(id); err == nil && e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("%d", id)
}

// DisallowJoins stops the element joining its neighbours at both ends.
func (m *Model) DisallowJoins(id types.ElementID) error {
	if !m.inTx {
		return ErrNoTransaction
	}
	e, err := m.element(id)
	if err != nil {
		return err
	}
	if !slices.Contains(joinableCategories, e.Category) {
		return fmt.Errorf("joins cannot be disallowed on %s element %d", strings.ToLower(e.Category), id)
	}
	if e.JoinsAllowed {
		e.JoinsAllowed = false
		m.dirty = true
	}
	return nil
}

// DeleteElement deletes the element and everything hosted on it. Pinned
// elements are not deleted and yield an empty result.
func (m *Model) DeleteElement(id types.ElementID) ([]types.ElementID, error) {
	if !m.inTx {
		return nil, ErrNoTransaction
	}
	e, err := m.element(id)
	if err != nil {
		return nil, err
	}
	if e.Pinned {
		return nil, nil
	}

	doomed := map[types.ElementID]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, other := range m.st.Elements {
			if !doomed[other.ID] && other.HostID.Valid() && doomed[other.HostID] {
				doomed[other.ID] = true
				changed = true
			}
		}
	}

	var deleted []types.ElementID
	kept := m.st.Elements[:0]
	for _, other := range m.st.Elements {
		if doomed[other.ID] {
			deleted = append(deleted, other.ID)
			continue
		}
		kept = append(kept, other)
	}
	m.st.Elements = kept
	m.reindex()
	m.dirty = true
	return deleted, nil
}

// BeginTransaction snapshots the model state.
func (m *Model) BeginTransaction(name string) error {
	if m.inTx {
		return fmt.Errorf("%w: %q", ErrTransactionOpen, m.txName)
	}
	snap, err := msgpack.Marshal(&m.st)
	if err != nil {
		return fmt.Errorf("snapshotting model: %w", err)
	}
	m.snapshot = snap
	m.txName = name
	m.inTx = true
	return nil
}

// Rollback restores the state captured by BeginTransaction.
func (m *Model) Rollback() error {
	if !m.inTx {
		return ErrNoTransaction
	}
	var restored state
	if err := msgpack.Unmarshal(m.snapshot, &restored); err != nil {
		return fmt.Errorf("restoring model snapshot: %w", err)
	}
	m.st = restored
	m.reindex()
	m.inTx = false
	m.txName = ""
	m.snapshot = nil
	m.dirty = false
	return nil
}

// Regenerate recomputes derived geometry after mutations.
func (m *Model) Regenerate() error {
	m.dirty = false
	return nil
}

// InTransaction reports whether a transaction is open.
func (m *Model) InTransaction() bool {
	return m.inTx
}

// Len returns the number of elements in the model.
func (m *Model) Len() int {
	return len(m.st.Elements)
}

// Fingerprint returns a digest of the full model state.
func (m *Model) Fingerprint() (string, error) {
	data, err := msgpack.Marshal(&m.st)
	if err != nil {
		return "", fmt.Errorf("encoding model state: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
