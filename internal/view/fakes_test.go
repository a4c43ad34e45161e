package view

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"varboard/internal/client"
	"varboard/internal/model"
	"varboard/internal/session"
)

// fakeAPI is an in-memory backend that records every call it receives.
type fakeAPI struct {
	mu       sync.Mutex
	calls    []string
	users    map[string]string
	projects map[uint]*model.Project
	nextID   uint
	sess     *session.Session
	failNext error
}

func newFakeAPI(sess *session.Session) *fakeAPI {
	return &fakeAPI{
		users:    map[string]string{},
		projects: map[uint]*model.Project{},
		nextID:   1,
		sess:     sess,
	}
}

func (f *fakeAPI) record(format string, args ...interface{}) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	if err := f.failNext; err != nil {
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) id() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Login %s", username); err != nil {
		return "", err
	}
	if pw, ok := f.users[username]; !ok || pw != password {
		return "", client.ErrLoginFailed
	}
	token := "token-" + username
	if err := f.sess.Begin(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

func (f *fakeAPI) Register(ctx context.Context, username, password string) (string, error) {
	f.mu.Lock()
	if err := f.record("Register %s", username); err != nil {
		f.mu.Unlock()
		return "", err
	}
	if _, exists := f.users[username]; !exists {
		f.users[username] = password
	}
	f.mu.Unlock()
	return f.Login(ctx, username, password)
}

func (f *fakeAPI) LoadProjects(_ context.Context) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("LoadProjects"); err != nil {
		return nil, err
	}
	out := []model.Project{}
	for _, p := range f.projects {
		out = append(out, model.Project{ID: p.ID, Name: p.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAPI) CreateProject(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateProject %s", name); err != nil {
		return err
	}
	id := f.id()
	f.projects[id] = &model.Project{ID: id, Name: name, Token: fmt.Sprintf("tok-%d", id)}
	return nil
}

func (f *fakeAPI) UpdateProject(_ context.Context, projectID uint, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateProject %d %s", projectID, name); err != nil {
		return err
	}
	if p, ok := f.projects[projectID]; ok {
		p.Name = name
	}
	return nil
}

func (f *fakeAPI) DeleteProject(_ context.Context, projectID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteProject %d", projectID); err != nil {
		return err
	}
	delete(f.projects, projectID)
	return nil
}

func (f *fakeAPI) LoadProject(_ context.Context, projectID uint) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("LoadProject %d", projectID); err != nil {
		return nil, err
	}
	p, ok := f.projects[projectID]
	if !ok {
		return &model.Project{}, nil
	}
	cp := *p
	cp.Tables = make([]model.Table, len(p.Tables))
	for i, t := range p.Tables {
		cp.Tables[i] = t
		cp.Tables[i].Variables = append([]model.Variable(nil), t.Variables...)
	}
	return &cp, nil
}

func (f *fakeAPI) CreateTable(_ context.Context, projectID uint, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateTable %d %s", projectID, name); err != nil {
		return err
	}
	if p, ok := f.projects[projectID]; ok {
		p.Tables = append(p.Tables, model.Table{ID: f.id(), Name: name})
	}
	return nil
}

func (f *fakeAPI) UpdateTableName(_ context.Context, projectID, tableID uint, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateTableName %d %d %s", projectID, tableID, name); err != nil {
		return err
	}
	if t := f.table(projectID, tableID); t != nil {
		t.Name = name
	}
	return nil
}

func (f *fakeAPI) DeleteTable(_ context.Context, projectID, tableID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteTable %d %d", projectID, tableID); err != nil {
		return err
	}
	if p, ok := f.projects[projectID]; ok {
		kept := p.Tables[:0]
		for _, t := range p.Tables {
			if t.ID != tableID {
				kept = append(kept, t)
			}
		}
		p.Tables = kept
	}
	return nil
}

func (f *fakeAPI) NewVar(_ context.Context, projectID, tableID uint, name string, typ model.VariableType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("NewVar %d %d %s %s", projectID, tableID, name, typ); err != nil {
		return err
	}
	if t := f.table(projectID, tableID); t != nil {
		t.Variables = append(t.Variables, model.Variable{Name: name, Type: typ})
	}
	return nil
}

func (f *fakeAPI) SetVariable(_ context.Context, projectID, tableID uint, typ model.VariableType, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SetVariable %d %d %s %s", projectID, tableID, typ, name); err != nil {
		return err
	}
	if t := f.table(projectID, tableID); t != nil {
		if v := t.FindVariable(name); v != nil {
			v.Type = typ
		}
	}
	return nil
}

func (f *fakeAPI) DeleteVariable(_ context.Context, name string, projectID, tableID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteVariable %s %d %d", name, projectID, tableID); err != nil {
		return err
	}
	if t := f.table(projectID, tableID); t != nil {
		kept := t.Variables[:0]
		for _, v := range t.Variables {
			if v.Name != name {
				kept = append(kept, v)
			}
		}
		t.Variables = kept
	}
	return nil
}

func (f *fakeAPI) table(projectID, tableID uint) *model.Table {
	p, ok := f.projects[projectID]
	if !ok {
		return nil
	}
	return p.FindTable(tableID)
}

// scriptedDialogs answers prompts and confirmations from queues.
type scriptedDialogs struct {
	answers  []string
	confirms []bool
	prompts  []string
	alerts   []string
}

// cancel is queued to make a prompt report cancellation.
const cancel = "\x00cancel"

func (d *scriptedDialogs) Prompt(message, defaultValue string) (string, bool) {
	d.prompts = append(d.prompts, message+"|"+defaultValue)
	if len(d.answers) == 0 {
		return "", false
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	if answer == cancel {
		return "", false
	}
	return answer, true
}

func (d *scriptedDialogs) Confirm(message string) bool {
	d.prompts = append(d.prompts, message)
	if len(d.confirms) == 0 {
		return false
	}
	ok := d.confirms[0]
	d.confirms = d.confirms[1:]
	return ok
}

func (d *scriptedDialogs) Alert(message string) {
	d.alerts = append(d.alerts, message)
}

type recordingNavigator struct {
	visited []string
}

func (n *recordingNavigator) Navigate(location string) {
	n.visited = append(n.visited, location)
}

func (n *recordingNavigator) last() string {
	if len(n.visited) == 0 {
		return ""
	}
	return n.visited[len(n.visited)-1]
}

func callsWithPrefix(calls []string, prefix string) []string {
	var out []string
	for _, c := range calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
