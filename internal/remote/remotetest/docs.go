// Package remotetest provides an in-memory remote.Documents for tests.
package remotetest

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/PaulBabatuyi/chatsync/internal/remote"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type listener struct {
	q remote.Query
	l remote.Listener
}

// Docs is an in-memory remote.Documents. Listeners are notified
// synchronously on the writing goroutine. It counts listener
// registrations so tests can check subscription bookkeeping.
type Docs struct {
	mu         sync.Mutex
	colls      map[string]map[string]bson.M
	listeners  map[int]listener
	nextListen int
	nextDoc    int
	registered int
	removed    int

	listenErr error
	findErr   map[string]error
	getErr    map[string]error
	updateErr map[string]error
}

// New returns an empty store.
func New() *Docs {
	return &Docs{
		colls:     map[string]map[string]bson.M{},
		listeners: map[int]listener{},
		findErr:   map[string]error{},
		getErr:    map[string]error{},
		updateErr: map[string]error{},
	}
}

// Registered is the number of listeners ever registered.
func (d *Docs) Registered() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registered
}

// Removed is the number of listener deregistrations.
func (d *Docs) Removed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removed
}

// Active is the number of listeners currently registered.
func (d *Docs) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// FailListen makes the next Listen calls fail with err (nil clears it).
func (d *Docs) FailListen(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listenErr = err
}

// FailFind makes Find on collection fail with err (nil clears it).
func (d *Docs) FailFind(collection string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.findErr[collection] = err
}

// FailGet makes Get of one document fail with err (nil clears it).
func (d *Docs) FailGet(collection, id string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.getErr[collection+"/"+id] = err
}

// FailUpdate makes Update of one document fail with err (nil clears it).
func (d *Docs) FailUpdate(collection, id string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updateErr[collection+"/"+id] = err
}

// Break reports err to every live listener on collection, as a dropped
// backend connection would.
func (d *Docs) Break(collection string, err error) {
	for _, l := range d.listenersFor(collection, nil, nil) {
		l.OnError(err)
	}
}

// Listen implements remote.Documents.
func (d *Docs) Listen(_ context.Context, q remote.Query, l remote.Listener) (remote.Registration, error) {
	d.mu.Lock()
	if d.listenErr != nil {
		err := d.listenErr
		d.mu.Unlock()
		return nil, err
	}
	id := d.nextListen
	d.nextListen++
	d.listeners[id] = listener{q: q, l: l}
	d.registered++
	d.mu.Unlock()

	l.OnChange()

	return remote.RegistrationFunc(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
		d.removed++
	}), nil
}

// Find implements remote.Documents.
func (d *Docs) Find(_ context.Context, q remote.Query, out any) error {
	d.mu.Lock()
	if err := d.findErr[q.Collection]; err != nil {
		d.mu.Unlock()
		return err
	}
	var matched []bson.M
	for _, doc := range d.colls[q.Collection] {
		if matches(doc, q.Filters) {
			matched = append(matched, doc)
		}
	}
	d.mu.Unlock()

	if q.OrderField != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			c := compare(matched[i][q.OrderField], matched[j][q.OrderField])
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	} else {
		sort.SliceStable(matched, func(i, j int) bool {
			return fmt.Sprint(matched[i]["_id"]) < fmt.Sprint(matched[j]["_id"])
		})
	}
	if q.MaxResults > 0 && int64(len(matched)) > q.MaxResults {
		matched = matched[:q.MaxResults]
	}

	rv := reflect.ValueOf(out).Elem()
	result := reflect.MakeSlice(rv.Type(), 0, len(matched))
	for _, doc := range matched {
		elem := reflect.New(rv.Type().Elem())
		if err := decode(doc, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	rv.Set(result)
	return nil
}

// Get implements remote.Documents.
func (d *Docs) Get(_ context.Context, collection, id string, out any) error {
	d.mu.Lock()
	if err := d.getErr[collection+"/"+id]; err != nil {
		d.mu.Unlock()
		return err
	}
	doc, ok := d.colls[collection][id]
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
	}
	return decode(doc, out)
}

// Add implements remote.Documents with sequential ids ("doc-1", "doc-2", ...).
func (d *Docs) Add(ctx context.Context, collection string, doc any) (string, error) {
	d.mu.Lock()
	d.nextDoc++
	id := "doc-" + strconv.Itoa(d.nextDoc)
	d.mu.Unlock()
	return id, d.Set(ctx, collection, id, doc)
}

// Set implements remote.Documents.
func (d *Docs) Set(_ context.Context, collection, id string, doc any) error {
	fields, err := encode(doc)
	if err != nil {
		return err
	}
	fields["_id"] = id

	d.mu.Lock()
	if d.colls[collection] == nil {
		d.colls[collection] = map[string]bson.M{}
	}
	old := d.colls[collection][id]
	d.colls[collection][id] = fields
	d.mu.Unlock()

	d.notify(collection, old, fields)
	return nil
}

// Update implements remote.Documents.
func (d *Docs) Update(_ context.Context, collection, id string, fields map[string]any) error {
	patch, err := encode(fields)
	if err != nil {
		return err
	}

	d.mu.Lock()
	if err := d.updateErr[collection+"/"+id]; err != nil {
		d.mu.Unlock()
		return err
	}
	old, ok := d.colls[collection][id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
	}
	updated := bson.M{}
	for k, v := range old {
		updated[k] = v
	}
	for k, v := range patch {
		updated[k] = v
	}
	d.colls[collection][id] = updated
	d.mu.Unlock()

	d.notify(collection, old, updated)
	return nil
}

// Delete implements remote.Documents.
func (d *Docs) Delete(_ context.Context, collection, id string) error {
	d.mu.Lock()
	old, ok := d.colls[collection][id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%s/%s: %w", collection, id, remote.ErrNotFound)
	}
	delete(d.colls[collection], id)
	d.mu.Unlock()

	d.notify(collection, old, nil)
	return nil
}

func (d *Docs) notify(collection string, before, after bson.M) {
	for _, l := range d.listenersFor(collection, before, after) {
		l.OnChange()
	}
}

// listenersFor returns the listeners on collection whose query matches
// before or after; with both nil every listener on collection is returned.
func (d *Docs) listenersFor(collection string, before, after bson.M) []remote.Listener {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []remote.Listener
	for _, id := range ids {
		ln := d.listeners[id]
		if ln.q.Collection != collection {
			continue
		}
		all := before == nil && after == nil
		if all || (before != nil && matches(before, ln.q.Filters)) || (after != nil && matches(after, ln.q.Filters)) {
			out = append(out, ln.l)
		}
	}
	return out
}

func matches(doc bson.M, filters []remote.Filter) bool {
	for _, f := range filters {
		v := doc[f.Field]
		switch f.Op {
		case remote.OpPrefix:
			s, ok := v.(string)
			p, _ := f.Value.(string)
			if !ok || !strings.HasPrefix(s, p) {
				return false
			}
		default:
			// equality against an array matches any element, as on the server
			if arr, ok := v.(bson.A); ok {
				if !contains(arr, f.Value) {
					return false
				}
			} else if f.Op == remote.OpArrayContains || v != f.Value {
				return false
			}
		}
	}
	return true
}

func contains(arr bson.A, v any) bool {
	for _, e := range arr {
		if e == v {
			return true
		}
	}
	return false
}

func compare(a, b any) int {
	switch x := a.(type) {
	case bson.DateTime:
		y, _ := b.(bson.DateTime)
		return cmp.Compare(x, y)
	case string:
		y, _ := b.(string)
		return strings.Compare(x, y)
	case int32:
		y, _ := b.(int32)
		return cmp.Compare(x, y)
	case int64:
		y, _ := b.(int64)
		return cmp.Compare(x, y)
	case float64:
		y, _ := b.(float64)
		return cmp.Compare(x, y)
	}
	return 0
}

func encode(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decode(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}
