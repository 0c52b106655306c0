package state

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BVTRay/vioflow/internal/domain/delivery"
)

// Store owns the authoritative snapshot. All mutation funnels through Apply;
// no other component constructs snapshots. Events are applied to completion
// in submission order, and every applied event swaps in a structurally new
// snapshot, so readers of Snapshot() never see partial state.
type Store struct {
	mu       sync.Mutex
	snap     Snapshot
	logger   *slog.Logger
	watchers []func(Snapshot)
}

// NewStore creates a store seeded with an initial snapshot.
func NewStore(initial Snapshot, logger *slog.Logger) *Store {
	if initial.Checklists == nil {
		initial.Checklists = map[string]delivery.Checklist{}
	}
	if initial.Workbench.View == nil {
		initial.Workbench.View = ViewNone{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{snap: initial, logger: logger}
}

// Snapshot returns the current snapshot by value.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Watch registers a callback invoked after every applied (state-changing)
// event. Register watchers during wiring, before events flow.
func (s *Store) Watch(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Apply runs one event through the transition function and returns the
// resulting snapshot. Unknown or invalid events return the snapshot
// unchanged; Apply never fails.
func (s *Store) Apply(ev Event) Snapshot {
	s.mu.Lock()
	next, changed := Transition(s.snap, ev)
	if !changed {
		snap := s.snap
		s.mu.Unlock()
		s.logger.Debug("event ignored", "event", fmt.Sprintf("%T", ev))
		return snap
	}
	next.Version = s.snap.Version + 1
	s.snap = next
	watchers := s.watchers
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(next)
	}
	return next
}

// Transition is the pure event transition function. It returns the next
// snapshot and whether the event changed anything.
func Transition(s Snapshot, ev Event) (Snapshot, bool) {
	switch ev := ev.(type) {
	case SelectProject:
		return applySelectProject(s, ev)
	case SelectVideo:
		return applySelectVideo(s, ev)
	case SelectGroup:
		return applySelectGroup(s, ev)
	case ExplorerBack:
		return applyExplorerBack(s)
	case ToggleRetrievalPanel:
		return applyToggleRetrievalPanel(s)
	case SetGroupTag:
		return applySetGroupTag(s, ev)
	case ToggleGroupTagMultiSelect:
		return applyToggleGroupTagMultiSelect(s, ev)
	case OpenUpload:
		return applyOpenUpload(s, ev)
	case OpenNewProject:
		return applyOpenNewProject(s, ev)
	case OpenProjectSettings:
		return applyOpenProjectSettings(s, ev)
	case ShowVersionHistory:
		return applyShowVersionHistory(s, ev)
	case HideVersionHistory:
		return applyHideVersionHistory(s)
	case CloseWorkbench:
		return applyCloseWorkbench(s)
	case AddProject:
		return applyAddProject(s, ev)
	case UpdateProject:
		return applyUpdateProject(s, ev)
	case RemoveProject:
		return applyRemoveProject(s, ev)
	case FinalizeProject:
		return applyFinalizeProject(s, ev)
	case CompleteDelivery:
		return applyCompleteDelivery(s, ev)
	case ArchiveProject:
		return applyArchiveProject(s, ev)
	case AddVideo:
		return applyAddVideo(s, ev.Video)
	case UpdateVideo:
		return applyUpdateVideo(s, ev)
	case RemoveVideo:
		return applyRemoveVideo(s, ev)
	case ToggleCaseFile:
		return applyToggleCaseFile(s, ev)
	case ToggleMainDelivery:
		return applyToggleMainDelivery(s, ev)
	case SetVideoStatus:
		return applySetVideoStatus(s, ev)
	case UpdateVideoTags:
		return applyUpdateVideoTags(s, ev)
	case UpdateChecklistField:
		return applyUpdateChecklistField(s, ev)
	case UpdateChecklistNote:
		return applyUpdateChecklistNote(s, ev)
	case SetDeliveryInfo:
		return applySetDeliveryInfo(s, ev)
	case AddDeliveryPackage:
		return applyAddDeliveryPackage(s, ev)
	case RecordDownload:
		return applyRecordDownload(s, ev)
	case SetPackageActive:
		return applySetPackageActive(s, ev)
	case UpsertTag:
		return applyUpsertTag(s, ev)
	case AddUploadTask:
		return applyAddUploadTask(s, ev)
	case UpdateUploadProgress:
		return applyUpdateUploadProgress(s, ev)
	case CompleteUpload:
		return applyCompleteUpload(s, ev)
	case FailUpload:
		return applyFailUpload(s, ev)
	case CancelUpload:
		return applyCancelUpload(s, ev)
	case AddNotification:
		return applyAddNotification(s, ev)
	case MarkNotificationRead:
		return applyMarkNotificationRead(s, ev)
	default:
		return s, false
	}
}
