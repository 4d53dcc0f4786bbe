// package tasks implements reconciliation of the local station catalog with the reference list.
//
// The core abstraction is Reconciler, which derives insert, update and delete sets from two cached snapshots and applies them.
// Write operations emit progress updates via channels for non-blocking status reporting to the CLI.
package tasks

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stationer/internal/models"
	"github.com/desertthunder/stationer/internal/services"
	"github.com/desertthunder/stationer/internal/shared"
)

// Store defines the local station catalog operations the engine drives.
type Store interface {
	// List returns the stations currently held by the store.
	List(ctx context.Context) ([]models.Station, error)

	// Insert adds a station.
	Insert(ctx context.Context, station models.Station) error

	// Update renames the station stored at the station's frequency.
	Update(ctx context.Context, station models.Station) error

	// Delete removes the station stored at a frequency.
	Delete(ctx context.Context, frequency models.Frequency) error

	// Recategorize moves every station of category from into category to.
	Recategorize(ctx context.Context, to, from int) (int64, error)
}

// Plan holds the three diff sets derived from one pair of snapshots.
type Plan struct {
	Insert []models.Station // In the reference, missing locally
	Update []models.Station // Reference entries whose truncated name differs locally
	Delete []models.Station // Held locally, missing from the reference
}

// Empty reports whether the plan issues no commands.
func (p *Plan) Empty() bool {
	return len(p.Insert) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// SyncResult contains the number of commands issued by [Reconciler.Sync].
type SyncResult struct {
	RunID    string
	Updated  int
	Deleted  int
	Inserted int

	// Snapshot sizes the plan was computed from. Only set when Planned is true.
	Planned   bool
	Reference int
	Local     int
}

// Total returns the number of commands issued.
func (r *SyncResult) Total() int {
	return r.Updated + r.Deleted + r.Inserted
}

// Reconciler computes and applies the difference between a reference source and the local store.
//
// The reference snapshot is fetched once and kept for the lifetime of the Reconciler.
// The local snapshot is fetched once and dropped after every completed write operation.
// All methods are serialized: one operation, including its cache invalidation, completes before the next starts.
type Reconciler struct {
	source services.Source
	store  Store
	logger *log.Logger

	mu              sync.Mutex
	reference       []models.Station
	referenceLoaded bool
	local           []models.Station
	localLoaded     bool
}

// NewReconciler creates a new Reconciler. A nil logger discards log output.
func NewReconciler(source services.Source, store Store, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reconciler{
		source: source,
		store:  store,
		logger: logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (r *Reconciler) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Reference returns the band-filtered reference snapshot, fetching it on first use.
func (r *Reconciler) Reference(ctx context.Context) ([]models.Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stations, err := r.loadReference(ctx, nil)
	return slices.Clone(stations), err
}

// Local returns the local snapshot, fetching it if it is not cached.
func (r *Reconciler) Local(ctx context.Context) ([]models.Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stations, err := r.loadLocal(ctx, nil)
	return slices.Clone(stations), err
}

// Invalidate drops the local snapshot so the next operation reads the store again.
func (r *Reconciler) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidate()
}

// ToInsert returns reference stations whose frequency is absent locally.
func (r *Reconciler) ToInsert(ctx context.Context) ([]models.Station, error) {
	plan, err := r.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return plan.Insert, nil
}

// ToUpdate returns reference stations held locally under a different truncated name.
func (r *Reconciler) ToUpdate(ctx context.Context) ([]models.Station, error) {
	plan, err := r.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return plan.Update, nil
}

// ToDelete returns local stations whose frequency is absent from the reference.
func (r *Reconciler) ToDelete(ctx context.Context) ([]models.Station, error) {
	plan, err := r.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return plan.Delete, nil
}

// Plan derives all three diff sets from the current snapshots.
func (r *Reconciler) Plan(ctx context.Context) (*Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plan(ctx, nil)
}

// Insert adds every station of the insert set to the store and returns the number inserted.
func (r *Reconciler) Insert(ctx context.Context, progress chan<- ProgressUpdate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, err := r.plan(ctx, progress)
	if err != nil {
		return 0, err
	}
	return r.applyAndInvalidate(ctx, insertOp(r.store), plan.Insert, progress)
}

// Update renames every station of the update set and returns the number updated.
func (r *Reconciler) Update(ctx context.Context, progress chan<- ProgressUpdate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, err := r.plan(ctx, progress)
	if err != nil {
		return 0, err
	}
	return r.applyAndInvalidate(ctx, updateOp(r.store), plan.Update, progress)
}

// Delete removes every station of the delete set and returns the number deleted.
func (r *Reconciler) Delete(ctx context.Context, progress chan<- ProgressUpdate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, err := r.plan(ctx, progress)
	if err != nil {
		return 0, err
	}
	return r.applyAndInvalidate(ctx, deleteOp(r.store), plan.Delete, progress)
}

// Sync applies updates, then deletes, then inserts.
//
// All three sets come from the snapshot taken before the first command, and the local snapshot is only
// dropped once every step has completed. A failing step stops the run and leaves the snapshot cached.
func (r *Reconciler) Sync(ctx context.Context, progress chan<- ProgressUpdate) (*SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := &SyncResult{RunID: shared.GenerateID()}
	logger := shared.WithLogger(r.logger, "run", result.RunID)

	plan, err := r.plan(ctx, progress)
	if err != nil {
		return result, err
	}
	result.Planned = true
	result.Reference, result.Local = len(r.reference), len(r.local)

	steps := []struct {
		op       operation
		stations []models.Station
		count    *int
	}{
		{op: updateOp(r.store), stations: plan.Update, count: &result.Updated},
		{op: deleteOp(r.store), stations: plan.Delete, count: &result.Deleted},
		{op: insertOp(r.store), stations: plan.Insert, count: &result.Inserted},
	}

	for _, step := range steps {
		n, err := r.apply(ctx, logger, step.op, step.stations, progress)
		*step.count = n
		if err != nil {
			logger.Error("sync stopped", "phase", step.op.phase, "applied", n, "err", err)
			return result, err
		}
	}

	if result.Total() > 0 {
		r.invalidate()
	}

	logger.Info("sync complete", "updated", result.Updated, "deleted", result.Deleted, "inserted", result.Inserted)
	return result, nil
}

// MarkAllFavourite moves every normal station into the favourite category.
func (r *Reconciler) MarkAllFavourite(ctx context.Context, progress chan<- ProgressUpdate) (int64, error) {
	return r.recategorize(ctx, models.CategoryFavourite, models.CategoryNormal, progress)
}

// UnmarkAllFavourite moves every favourite station into the normal category.
func (r *Reconciler) UnmarkAllFavourite(ctx context.Context, progress chan<- ProgressUpdate) (int64, error) {
	return r.recategorize(ctx, models.CategoryNormal, models.CategoryFavourite, progress)
}

func (r *Reconciler) recategorize(ctx context.Context, to, from int, progress chan<- ProgressUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sendProgress(progress, recategorizeUpdate(to, from))
	moved, err := r.store.Recategorize(ctx, to, from)
	if err != nil {
		return 0, fmt.Errorf("failed to move stations to category %d: %w", to, err)
	}

	r.invalidate()
	r.logger.Info("stations recategorized", "from", from, "to", to, "moved", moved)
	return moved, nil
}

func (r *Reconciler) invalidate() {
	r.local = nil
	r.localLoaded = false
}

func (r *Reconciler) loadReference(ctx context.Context, progress chan<- ProgressUpdate) ([]models.Station, error) {
	if r.referenceLoaded {
		return r.reference, nil
	}

	r.sendProgress(progress, fetchReferenceUpdate(r.source.Name()))
	fetched, err := r.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reference stations from %s: %w", r.source.Name(), err)
	}

	r.reference = models.FilterBand(fetched)
	r.referenceLoaded = true
	r.logger.Debug("reference snapshot loaded", "source", r.source.Name(), "stations", len(r.reference), "out_of_band", len(fetched)-len(r.reference))
	return r.reference, nil
}

func (r *Reconciler) loadLocal(ctx context.Context, progress chan<- ProgressUpdate) ([]models.Station, error) {
	if r.localLoaded {
		return r.local, nil
	}

	r.sendProgress(progress, fetchLocalUpdate())
	stations, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list local stations: %w", err)
	}

	r.local = stations
	r.localLoaded = true
	r.logger.Debug("local snapshot loaded", "stations", len(r.local))
	return r.local, nil
}

func (r *Reconciler) plan(ctx context.Context, progress chan<- ProgressUpdate) (*Plan, error) {
	reference, err := r.loadReference(ctx, progress)
	if err != nil {
		return nil, err
	}
	local, err := r.loadLocal(ctx, progress)
	if err != nil {
		return nil, err
	}

	r.sendProgress(progress, compareUpdate(len(reference), len(local)))
	return Diff(reference, local), nil
}

// Diff derives the insert, update and delete sets of reference against local.
//
// Presence is decided by frequency alone. A station present on both sides is an update only if its name,
// truncated to [models.MaxNameLength], differs from the local one; the intersection is taken first.
func Diff(reference, local []models.Station) *Plan {
	matched := models.Intersect(reference, local, models.ByFrequency)
	return &Plan{
		Insert: models.Except(reference, local, models.ByFrequency),
		Update: models.Except(matched, local, models.ByContent(models.MaxNameLength)),
		Delete: models.Except(local, reference, models.ByFrequency),
	}
}

func (r *Reconciler) applyAndInvalidate(ctx context.Context, op operation, stations []models.Station, progress chan<- ProgressUpdate) (int, error) {
	if len(stations) == 0 {
		return 0, nil
	}

	logger := shared.WithLogger(r.logger, "run", shared.GenerateID())
	n, err := r.apply(ctx, logger, op, stations, progress)
	if err != nil {
		return n, err
	}

	r.invalidate()
	logger.Info("stations applied", "phase", op.phase, "count", n)
	return n, nil
}

// apply issues one store command per station. An empty set issues nothing.
func (r *Reconciler) apply(ctx context.Context, logger *log.Logger, op operation, stations []models.Station, progress chan<- ProgressUpdate) (int, error) {
	total := len(stations)
	for i, station := range stations {
		if err := op.exec(ctx, station); err != nil {
			return i, fmt.Errorf("failed to %s station %s (%s): %w", op.verb, station.Frequency, station.StoredName(), err)
		}
		logger.Debug("station applied", "phase", op.phase, "frequency", station.Frequency.String(), "name", station.StoredName())
		r.sendProgress(progress, applyUpdate(op.phase, i+1, total, station))
	}
	return total, nil
}

// operation binds a store command to its progress phase.
type operation struct {
	phase Phase
	verb  string
	exec  func(context.Context, models.Station) error
}

func insertOp(store Store) operation {
	return operation{phase: ApplyInsert, verb: "insert", exec: store.Insert}
}

func updateOp(store Store) operation {
	return operation{phase: ApplyUpdate, verb: "update", exec: store.Update}
}

func deleteOp(store Store) operation {
	return operation{phase: ApplyDelete, verb: "delete", exec: func(ctx context.Context, s models.Station) error {
		return store.Delete(ctx, s.Frequency)
	}}
}
