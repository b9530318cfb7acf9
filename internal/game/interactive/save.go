package interactive

import (
	"fmt"

	"github.com/udisondev/openworld/internal/model"
	"github.com/udisondev/openworld/internal/serialize"
)

// Save appends the object record to w. Field order is fixed; there is no version.
func (o *Object) Save(w *serialize.Writer) {
	_ = w.WriteByte(byte(o.kind))
	w.WriteString(o.tag)
	w.WriteString(o.focus)
	w.WriteString(o.visual)
	w.WriteVec3(o.bbox.Min)
	w.WriteVec3(o.bbox.Max)
	w.WriteString(o.owner)
	w.WriteInt(o.stateNum)
	w.WriteString(o.triggerTarget)
	w.WriteString(o.stateFunc)
	w.WriteMatrix(o.transform)
	o.invent.save(w)
	w.WriteInt(o.state)
	w.WriteBool(o.reverseState)
	w.WriteBool(o.loopState)
}

// LoadObject reads one object record. Attach points and the skeleton are
// rebuilt from visuals; occupancy is not persisted.
func LoadObject(r *serialize.Reader, visuals Visuals) (*Object, error) {
	o := &Object{}

	kind, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("reading kind: %w", err)
	}
	o.kind = model.VobKind(kind)

	for _, f := range []struct {
		dst  *string
		name string
	}{{&o.tag, "tag"}, {&o.focus, "focus"}, {&o.visual, "visual"}} {
		if *f.dst, err = r.ReadString(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.name, err)
		}
	}

	if o.bbox.Min, err = r.ReadVec3(); err != nil {
		return nil, fmt.Errorf("reading bbox: %w", err)
	}
	if o.bbox.Max, err = r.ReadVec3(); err != nil {
		return nil, fmt.Errorf("reading bbox: %w", err)
	}
	if o.owner, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("reading owner: %w", err)
	}
	if o.stateNum, err = r.ReadInt(); err != nil {
		return nil, fmt.Errorf("reading state count: %w", err)
	}
	if o.triggerTarget, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("reading trigger target: %w", err)
	}
	if o.stateFunc, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("reading state func: %w", err)
	}
	if o.transform, err = r.ReadMatrix(); err != nil {
		return nil, fmt.Errorf("reading transform: %w", err)
	}
	if err := o.invent.load(r); err != nil {
		return nil, err
	}
	if o.state, err = r.ReadInt(); err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	if o.reverseState, err = r.ReadBool(); err != nil {
		return nil, fmt.Errorf("reading reverse flag: %w", err)
	}
	if o.loopState, err = r.ReadBool(); err != nil {
		return nil, fmt.Errorf("reading loop flag: %w", err)
	}

	o.setVisual(visuals)
	return o, nil
}

// EncodeObjects writes a record count followed by every object record.
func EncodeObjects(objs []*Object) []byte {
	w := serialize.NewWriter(256 * len(objs))
	w.WriteUint(uint32(len(objs)))
	for _, o := range objs {
		o.Save(w)
	}
	return w.Bytes()
}

// DecodeObjects reads what EncodeObjects wrote.
func DecodeObjects(data []byte, visuals Visuals) ([]*Object, error) {
	r := serialize.NewReader(data)
	n, err := r.ReadUint()
	if err != nil {
		return nil, fmt.Errorf("reading object count: %w", err)
	}
	objs := make([]*Object, 0, min(int(n), r.Remaining()))
	for i := range n {
		o, err := LoadObject(r, visuals)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		objs = append(objs, o)
	}
	return objs, nil
}
