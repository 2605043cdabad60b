package wordpress

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/uldin-nl/hostctl/internal/domain"
)

// mockPanel implements Panel. wp decides each command's response; every
// command issued is recorded in order.
type mockPanel struct {
	site    *domain.Site
	siteErr error

	wp       func(command string) (*domain.CommandResult, error)
	commands []string

	backups   []domain.FileBackup
	listErr   error
	created   *domain.CreateFileBackupOpts
	createErr error
	runIDs    []int64
	runErr    error
}

func (m *mockPanel) GetSite(_ context.Context, _, _ int64) (*domain.Site, error) {
	return m.site, m.siteErr
}

func (m *mockPanel) RunWPCommand(_ context.Context, _ int64, command string) (*domain.CommandResult, error) {
	m.commands = append(m.commands, command)
	if m.wp == nil {
		return &domain.CommandResult{Status: "ok"}, nil
	}
	return m.wp(command)
}

func (m *mockPanel) ListFileBackups(_ context.Context) ([]domain.FileBackup, error) {
	return m.backups, m.listErr
}

func (m *mockPanel) CreateFileBackup(_ context.Context, opts domain.CreateFileBackupOpts) (*domain.FileBackup, error) {
	m.created = &opts
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &domain.FileBackup{ID: 12}, nil
}

func (m *mockPanel) RunFileBackup(_ context.Context, backupID int64) error {
	m.runIDs = append(m.runIDs, backupID)
	return m.runErr
}

// probePath extracts the quoted --path argument from a probe command.
func probePath(t *testing.T, command string) string {
	t.Helper()
	_, rest, ok := strings.Cut(command, "--path='")
	if !ok {
		t.Fatalf("no --path in command %q", command)
	}
	path, _, ok := strings.Cut(rest, "'")
	if !ok {
		t.Fatalf("unterminated --path in command %q", command)
	}
	return path
}

func testSite() *domain.Site {
	return &domain.Site{
		ID:          7,
		Domain:      "example.com",
		SystemUser:  "alice",
		ProjectRoot: "/current",
	}
}

func int64p(v int64) *int64 { return &v }

func TestCandidatePaths_Order(t *testing.T) {
	got, err := CandidatePaths(testSite())
	if err != nil {
		t.Fatalf("CandidatePaths: %v", err)
	}
	want := []string{
		"/home/alice/example.com/current",
		"/home/alice/example.com",
		"/home/alice/example.com/public",
		"/home/alice/example.com/public_html",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate order mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidatePaths_RootCollapsesIntoBase(t *testing.T) {
	site := &domain.Site{Domain: "example.com", SystemUser: "alice", ProjectRoot: "/"}
	got, err := CandidatePaths(site)
	if err != nil {
		t.Fatalf("CandidatePaths: %v", err)
	}
	want := []string{
		"/home/alice/example.com",
		"/home/alice/example.com/public",
		"/home/alice/example.com/public_html",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidate order mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidatePaths_WebDirectoryFallbackAndDefaultUser(t *testing.T) {
	site := &domain.Site{Name: "example.com", WebDirectory: "public"}
	got, err := CandidatePaths(site)
	if err != nil {
		t.Fatalf("CandidatePaths: %v", err)
	}
	if got[0] != "/home/ploi/example.com/public" {
		t.Errorf("primary = %q, want /home/ploi/example.com/public", got[0])
	}
}

func TestCandidatePaths_MissingDomain(t *testing.T) {
	_, err := CandidatePaths(&domain.Site{SystemUser: "alice"})
	if !errors.Is(err, domain.ErrMissingDomain) {
		t.Fatalf("err = %v, want ErrMissingDomain", err)
	}
}

func TestResolvePath_FirstSuccessWins(t *testing.T) {
	panel := &mockPanel{
		wp: func(command string) (*domain.CommandResult, error) {
			if strings.Contains(command, "'/home/alice/example.com/public'") {
				return &domain.CommandResult{Status: "ok"}, nil
			}
			return &domain.CommandResult{Status: "error", Message: "Error: This does not seem to be a WordPress installation."}, nil
		},
	}
	svc := New(panel)

	path, err := svc.ResolvePath(context.Background(), 42, testSite())
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if path != "/home/alice/example.com/public" {
		t.Errorf("path = %q, want /home/alice/example.com/public", path)
	}

	var probed []string
	for _, cmd := range panel.commands {
		probed = append(probed, probePath(t, cmd))
	}
	want := []string{
		"/home/alice/example.com/current",
		"/home/alice/example.com",
		"/home/alice/example.com/public",
	}
	if diff := cmp.Diff(want, probed); diff != "" {
		t.Errorf("probe order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePath_Exhausted(t *testing.T) {
	panel := &mockPanel{
		wp: func(string) (*domain.CommandResult, error) {
			return nil, errors.New("command failed")
		},
	}
	svc := New(panel)

	_, err := svc.ResolvePath(context.Background(), 42, testSite())
	if !errors.Is(err, domain.ErrNoWordPress) {
		t.Fatalf("err = %v, want ErrNoWordPress", err)
	}
	if len(panel.commands) != 4 {
		t.Errorf("probed %d candidates, want 4", len(panel.commands))
	}
}

func TestRunUpdates_BackupFailureBlocksUpdates(t *testing.T) {
	panel := &mockPanel{
		site:    testSite(),
		listErr: errors.New("backups unavailable"),
	}
	svc := New(panel)

	_, err := svc.RunUpdates(context.Background(), 42, 7, UpdateTargets{Plugins: []string{"a", "b"}}, 3)
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, cmd := range panel.commands {
		if strings.Contains(cmd, "update") && !strings.Contains(cmd, "is-installed") {
			t.Errorf("update command issued despite failed backup: %q", cmd)
		}
	}
}

func TestRunUpdates_PartialFailureIsPerTarget(t *testing.T) {
	panel := &mockPanel{
		site:    testSite(),
		backups: []domain.FileBackup{{ID: 5, SiteID: 7, ServerID: int64p(42)}},
		wp: func(command string) (*domain.CommandResult, error) {
			if strings.HasPrefix(command, "plugin update") {
				return &domain.CommandResult{Status: "ok", Message: "Error: Plugin 'woocommerce' update failed."}, nil
			}
			return &domain.CommandResult{Status: "ok", Message: "Success: WordPress updated."}, nil
		},
	}
	svc := New(panel)

	results, err := svc.RunUpdates(context.Background(), 42, 7, UpdateTargets{
		Core:    true,
		Plugins: []string{"woocommerce"},
	}, 3)
	if err != nil {
		t.Fatalf("RunUpdates: %v", err)
	}

	if diff := cmp.Diff([]int64{5}, panel.runIDs); diff != "" {
		t.Errorf("backup run ids mismatch (-want +got):\n%s", diff)
	}
	if !results[TargetCore].OK() {
		t.Errorf("core result = %+v, want success", results[TargetCore])
	}
	if results[TargetPlugins].OK() {
		t.Errorf("plugins result = %+v, want failure", results[TargetPlugins])
	}
	if _, ok := results[TargetThemes]; ok {
		t.Error("themes were not requested but have a result")
	}
}

func TestEnsureBackup_CreatesWhenMissing(t *testing.T) {
	panel := &mockPanel{}
	svc := New(panel)

	backup, err := svc.EnsureBackup(context.Background(), 3, 42, 7, "/home/alice/example.com")
	if err != nil {
		t.Fatalf("EnsureBackup: %v", err)
	}
	if backup.ID != 12 {
		t.Errorf("backup id = %d, want 12", backup.ID)
	}
	if panel.created == nil {
		t.Fatal("expected a create call")
	}
	want := domain.CreateFileBackupOpts{
		BackupConfiguration: 3,
		Server:              42,
		Sites:               []int64{7},
		Interval:            0,
		Path:                map[string]string{"7": "/home/alice/example.com"},
	}
	if diff := cmp.Diff(want, *panel.created); diff != "" {
		t.Errorf("create opts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{12}, panel.runIDs); diff != "" {
		t.Errorf("run ids mismatch (-want +got):\n%s", diff)
	}
}

func TestEnsureBackup_ReusesExistingWithoutServerID(t *testing.T) {
	panel := &mockPanel{
		backups: []domain.FileBackup{
			{ID: 8, SiteID: 99},
			{ID: 9, SiteID: 7},
		},
	}
	svc := New(panel)

	backup, err := svc.EnsureBackup(context.Background(), 3, 42, 7, "/tmp/site")
	if err != nil {
		t.Fatalf("EnsureBackup: %v", err)
	}
	if backup.ID != 9 {
		t.Errorf("backup id = %d, want 9", backup.ID)
	}
	if panel.created != nil {
		t.Errorf("unexpected create call: %+v", panel.created)
	}
}

func TestCheckUpdates_ParsesNoisyJSON(t *testing.T) {
	panel := &mockPanel{
		site: testSite(),
		wp: func(command string) (*domain.CommandResult, error) {
			switch {
			case strings.HasPrefix(command, "core is-installed"):
				return &domain.CommandResult{Status: "ok"}, nil
			case strings.HasPrefix(command, "core check-update"):
				msg := "Warning: some plugin noise\n[{\"version\":\"6.5.2\",\"update_type\":\"minor\"}]"
				return &domain.CommandResult{Status: "ok", Message: msg}, nil
			case strings.HasPrefix(command, "plugin list"):
				msg := "[{\"name\":\"woocommerce\",\"version\":\"8.0\",\"status\":\"active\",\"update\":\"available\",\"update_version\":\"8.1\"}]"
				return &domain.CommandResult{Status: "ok", Message: msg}, nil
			default:
				return &domain.CommandResult{Status: "ok", Message: "[]"}, nil
			}
		},
	}
	svc := New(panel)

	report, err := svc.CheckUpdates(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("CheckUpdates: %v", err)
	}
	if len(report.Core) != 1 || report.Core[0].Version != "6.5.2" {
		t.Errorf("core = %+v, want one 6.5.2 entry", report.Core)
	}
	if len(report.Plugins) != 1 || report.Plugins[0].UpdateVersion != "8.1" {
		t.Errorf("plugins = %+v, want one woocommerce entry", report.Plugins)
	}
	if len(report.Themes) != 0 {
		t.Errorf("themes = %+v, want empty", report.Themes)
	}
}

func TestCheckUpdates_ErrorMarkerFails(t *testing.T) {
	panel := &mockPanel{
		site: testSite(),
		wp: func(command string) (*domain.CommandResult, error) {
			if strings.HasPrefix(command, "core is-installed") {
				return &domain.CommandResult{Status: "ok"}, nil
			}
			return &domain.CommandResult{Status: "ok", Message: "Error: database connection refused"}, nil
		},
	}
	svc := New(panel)

	_, err := svc.CheckUpdates(context.Background(), 42, 7)
	if err == nil || !strings.Contains(err.Error(), "database connection refused") {
		t.Fatalf("err = %v, want the WP-CLI error message", err)
	}
}
