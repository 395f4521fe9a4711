package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/archive"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/database"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/notify"
)

type mockApp struct {
	db     database.Provider
	closed bool
}

func (m *mockApp) Close()                         { m.closed = true }
func (m *mockApp) GetLogger() *zap.Logger         { return zap.NewNop() }
func (m *mockApp) GetDatabase() database.Provider { return m.db }
func (m *mockApp) GetArchive() archive.Provider   { return archive.NewNoOpProvider() }
func (m *mockApp) GetPublisher() notify.Publisher { return notify.NewNoOpPublisher() }

func withMockApp(t *testing.T, mock *mockApp) {
	t.Helper()
	orig := newApp
	newApp = func(context.Context) (App, error) {
		return mock, nil
	}
	t.Cleanup(func() { newApp = orig })
}

func TestExportCommand_WritesCSV(t *testing.T) {
	mock := &mockApp{db: &database.NoOpProvider{}}
	withMockApp(t, mock)

	out := filepath.Join(t.TempDir(), "fighters.csv")
	root := newRootCmd()
	root.SetArgs([]string{"export", "-o", out})

	require.NoError(t, root.Execute())
	require.True(t, mock.closed)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "url,name,height_inches")
}

func TestRootCommand_AppFactoryFailureSurfaces(t *testing.T) {
	orig := newApp
	newApp = func(context.Context) (App, error) {
		return nil, errors.New("boom")
	}
	t.Cleanup(func() { newApp = orig })

	root := newRootCmd()
	root.SetArgs([]string{"export"})
	root.SilenceErrors = true
	root.SilenceUsage = true

	err := root.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "initialize application services")
}
