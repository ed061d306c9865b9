package bot

import (
	"sync"

	"rentadmin/internal/form"
)

type formPurpose string

const (
	formAddUser      formPurpose = "add_user"
	formEditUser     formPurpose = "edit_user"
	formAddProperty  formPurpose = "add_property"
	formEditProperty formPurpose = "edit_property"
	formAddBooking   formPurpose = "add_booking"
)

// formSession walks one draft through its schema fields, one prompt at a
// time. It is destroyed on cancel and on successful submission.
type formSession struct {
	purpose  formPurpose
	draft    *form.Draft
	fields   []form.Field // prompted fields, hidden ones excluded
	idx      int
	targetID int64 // entity id for edit flows
}

func (s *formSession) current() (form.Field, bool) {
	if s.idx < 0 || s.idx >= len(s.fields) {
		return form.Field{}, false
	}
	return s.fields[s.idx], true
}

// chatSession is the transient per-chat view state: the open form and
// list positions. The stores, not this, are the source of truth; a
// closed session loses nothing.
type chatSession struct {
	form      *formSession
	usersPage int
	usersRole string
	propsPage int
	bookPage  int
}

type sessionStore struct {
	mu sync.Mutex
	m  map[int64]*chatSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{m: make(map[int64]*chatSession)}
}

func (s *sessionStore) get(chatID int64) *chatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.m[chatID]
	if session == nil {
		session = &chatSession{usersRole: roleFilterAll}
		s.m[chatID] = session
	}
	return session
}

func (s *sessionStore) reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
}
