package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"doctor-roster/internal/domain/entity"
	"doctor-roster/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeDoctorRepo is an in-memory repository.DoctorRepository
type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]*entity.Doctor
}

func newFakeDoctorRepo(doctors ...*entity.Doctor) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: make(map[uuid.UUID]*entity.Doctor)}
	for _, d := range doctors {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		r.doctors[d.ID] = d
	}
	return r
}

func (r *fakeDoctorRepo) Create(ctx context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.doctors {
		if d.CareProviderCode == doctor.CareProviderCode {
			return repository.ErrDuplicateKey
		}
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	copied := *doctor
	r.doctors[doctor.ID] = &copied
	return nil
}

func (r *fakeDoctorRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDoctorRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Doctor
	for _, id := range ids {
		if d, ok := r.doctors[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDoctorRepo) FindByCareProviderCode(ctx context.Context, code string) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.doctors {
		if d.CareProviderCode == code {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) FindByLineID(ctx context.Context, lineID string) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.doctors {
		if d.ContactHandle() == lineID {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *doctor
	r.doctors[doctor.ID] = &copied
	return nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.doctors[id]; !ok {
		return 0, nil
	}
	delete(r.doctors, id)
	return 1, nil
}

func (r *fakeDoctorRepo) BindLineID(ctx context.Context, id uuid.UUID, lineID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.doctors[id]
	if !ok {
		return 0, nil
	}
	for _, d := range r.doctors {
		if d.ContactHandle() == lineID {
			d.LineID = nil
		}
	}
	handle := lineID
	target.LineID = &handle
	return 1, nil
}

// fakeLeaveRepo is an in-memory repository.LeaveRequestRepository whose
// ClaimReplacement performs the same compare-and-swap as the SQL version
type fakeLeaveRepo struct {
	mu     sync.Mutex
	leaves map[uuid.UUID]*entity.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[uuid.UUID]*entity.LeaveRequest)}
}

func cloneLeave(l *entity.LeaveRequest) *entity.LeaveRequest {
	copied := *l
	copied.Candidates = append([]entity.ReplacementCandidate(nil), l.Candidates...)
	return &copied
}

func (r *fakeLeaveRepo) Create(ctx context.Context, leave *entity.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if leave.ID == uuid.Nil {
		leave.ID = uuid.New()
	}
	now := time.Now().UTC()
	leave.CreatedAt, leave.UpdatedAt = now, now
	for i := range leave.Candidates {
		leave.Candidates[i].ID = uuid.New()
		leave.Candidates[i].LeaveRequestID = leave.ID
	}
	r.leaves[leave.ID] = cloneLeave(leave)
	return nil
}

func (r *fakeLeaveRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leaves[id]
	if !ok {
		return nil, nil
	}
	return cloneLeave(l), nil
}

func (r *fakeLeaveRepo) FindAll(ctx context.Context, filter *entity.LeaveFilter) ([]entity.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.LeaveRequest
	for _, l := range r.leaves {
		if filter != nil && filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter != nil && filter.DoctorID != nil && l.DoctorID != *filter.DoctorID {
			continue
		}
		out = append(out, *cloneLeave(l))
	}
	return out, nil
}

func (r *fakeLeaveRepo) FindOverlapping(ctx context.Context, filter entity.LeaveOverlapFilter) ([]entity.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.LeaveRequest
	for _, l := range r.leaves {
		if l.StartDate.After(filter.EndDate) || l.EndDate.Before(filter.StartDate) {
			continue
		}
		if filter.Ipus != "" && l.Ipus != filter.Ipus {
			continue
		}
		if filter.Department != "" && l.Department != filter.Department {
			continue
		}
		if len(filter.DoctorIDs) > 0 && !containsID(filter.DoctorIDs, l.DoctorID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, l.Status) {
			continue
		}
		out = append(out, *cloneLeave(l))
	}
	return out, nil
}

func (r *fakeLeaveRepo) Update(ctx context.Context, leave *entity.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.leaves[leave.ID]
	if !ok {
		return nil
	}
	candidates := stored.Candidates
	updated := cloneLeave(leave)
	updated.Candidates = candidates
	r.leaves[leave.ID] = updated
	return nil
}

func (r *fakeLeaveRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leaves[id]; !ok {
		return 0, nil
	}
	delete(r.leaves, id)
	return 1, nil
}

func (r *fakeLeaveRepo) UpdateDecision(ctx context.Context, id uuid.UUID, status entity.LeaveStatus, approver string, decidedAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leaves[id]
	if !ok {
		return 0, nil
	}
	l.Status = status
	l.ApprovedBy = approver
	l.ApprovedAt = &decidedAt
	return 1, nil
}

func (r *fakeLeaveRepo) ClaimReplacement(ctx context.Context, claim entity.ReplacementClaim) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leaves[claim.LeaveID]
	if !ok || l.Status != entity.LeaveStatusWaitingReplacement || l.AcceptedBy.IsSet() {
		return 0, nil
	}
	candidate := l.Candidate(claim.DoctorID)
	if candidate == nil || candidate.Status != entity.CandidateStatusPending {
		return 0, nil
	}

	doctorID := claim.DoctorID
	acceptedAt := claim.AcceptedAt
	l.Status = entity.LeaveStatusMatched
	l.AcceptedBy = entity.AcceptedBy{
		DoctorID:   &doctorID,
		DoctorName: claim.DoctorName,
		LineID:     claim.LineID,
		AcceptedAt: &acceptedAt,
	}
	candidate.Status = entity.CandidateStatusMatched
	candidate.RespondedAt = &acceptedAt
	return 1, nil
}

func (r *fakeLeaveRepo) stored(id uuid.UUID) *entity.LeaveRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneLeave(r.leaves[id])
}

// fakeShiftRequestRepo is an in-memory repository.ShiftRequestRepository
type fakeShiftRequestRepo struct {
	mu     sync.Mutex
	shifts []entity.ShiftRequest
}

func (r *fakeShiftRequestRepo) Create(ctx context.Context, shift *entity.ShiftRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	r.shifts = append(r.shifts, *shift)
	return nil
}

func (r *fakeShiftRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShiftRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.shifts {
		if r.shifts[i].ID == id {
			copied := r.shifts[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRequestRepo) FindAll(ctx context.Context, filter *entity.ShiftRequestFilter) ([]entity.ShiftRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.ShiftRequest
	for _, s := range r.shifts {
		if filter != nil && filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter != nil && filter.Date != nil && !s.Date.Equal(*filter.Date) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeShiftRequestRepo) FindForTable(ctx context.Context, filter entity.ShiftTableFilter) ([]entity.ShiftRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.ShiftRequest
	for _, s := range r.shifts {
		if s.Ipus != filter.Ipus || s.Department != filter.Department {
			continue
		}
		if s.Date.Before(filter.StartDate) || s.Date.After(filter.EndDate) {
			continue
		}
		if s.Status == entity.ShiftRequestStatusRejected {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeShiftRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ShiftRequestStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.shifts {
		if r.shifts[i].ID == id {
			r.shifts[i].Status = status
			return 1, nil
		}
	}
	return 0, nil
}

// fakeChatSessionRepo is an in-memory repository.ChatSessionRepository
type fakeChatSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]entity.ChatSession
	writes   int
	findErr  error
}

func newFakeChatSessionRepo() *fakeChatSessionRepo {
	return &fakeChatSessionRepo{sessions: make(map[string]entity.ChatSession)}
}

func (r *fakeChatSessionRepo) FindByLineUserID(ctx context.Context, lineUserID string) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.sessions[lineUserID]
	if !ok {
		return nil, nil
	}
	s.Context = copyContext(s.Context)
	return &s, nil
}

func (r *fakeChatSessionRepo) Upsert(ctx context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	stored.Context = copyContext(session.Context)
	r.sessions[session.LineUserID] = stored
	r.writes++
	return nil
}

func (r *fakeChatSessionRepo) session(lineUserID string) (entity.ChatSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[lineUserID]
	return s, ok
}

func (r *fakeChatSessionRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// recordingNotifier captures pushed messages per recipient
type recordingNotifier struct {
	mu       sync.Mutex
	messages map[string][]string
	err      error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{messages: make(map[string][]string)}
}

func (n *recordingNotifier) Send(ctx context.Context, to, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages[to] = append(n.messages[to], text)
	return n.err
}

func (n *recordingNotifier) sent(to string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages[to]...)
}

func (n *recordingNotifier) last(to string) string {
	msgs := n.sent(to)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

// stubDeduplicator reports each event id as new exactly once
type stubDeduplicator struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (d *stubDeduplicator) FirstDelivery(ctx context.Context, eventID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	if d.seen[eventID] {
		return false
	}
	d.seen[eventID] = true
	return true
}

func (d *stubDeduplicator) Forget(ctx context.Context, eventID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.seen, eventID)
}

func copyContext(src datatypes.JSONMap) datatypes.JSONMap {
	dst := make(datatypes.JSONMap, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsStatus(statuses []entity.LeaveStatus, status entity.LeaveStatus) bool {
	for _, v := range statuses {
		if v == status {
			return true
		}
	}
	return false
}

func strPtr(s string) *string {
	return &s
}

func mustDate(value string) time.Time {
	d, err := entity.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}
