package services

import (
	"context"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

type notification struct {
	title   string
	message string
}

type fakePresenter struct {
	clock         string
	status        string
	renders       int
	notifications []notification
}

func (p *fakePresenter) RenderTime(clock string) {
	p.clock = clock
	p.renders++
}

func (p *fakePresenter) RenderStatus(status string) {
	p.status = status
}

func (p *fakePresenter) NotifyUser(title, message string) {
	p.notifications = append(p.notifications, notification{title: title, message: message})
}

type fakeDriver struct {
	armed    bool
	interval time.Duration
	arms     int
	disarms  int
}

func (d *fakeDriver) Arm(interval time.Duration) {
	d.armed = true
	d.interval = interval
	d.arms++
}

func (d *fakeDriver) Disarm() {
	d.armed = false
	d.disarms++
}

// memorySettings is an in-memory ports.SettingsRepository.
type memorySettings struct {
	raw     *ports.RawSettings
	loadErr error
	saveErr error
	saves   int
}

func (m *memorySettings) Load(ctx context.Context) (ports.RawSettings, error) {
	if m.loadErr != nil {
		return ports.RawSettings{}, m.loadErr
	}
	if m.raw == nil {
		return ports.RawSettings{WorkMinutes: domain.DefaultWorkMinutes, BreakMinutes: domain.DefaultBreakMinutes}, nil
	}
	return *m.raw, nil
}

func (m *memorySettings) Save(ctx context.Context, d domain.Durations) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.raw = &ports.RawSettings{WorkMinutes: d.WorkMinutes(), BreakMinutes: d.BreakMinutes()}
	return nil
}

func (m *memorySettings) Path() string {
	return "memory"
}

type fakeGit struct {
	info *ports.GitInfo
	err  error
}

func (g *fakeGit) Detect(ctx context.Context, workingDir string) (*ports.GitInfo, error) {
	return g.info, g.err
}
