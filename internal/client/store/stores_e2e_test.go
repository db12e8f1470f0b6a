package store

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmskit/dmscli/internal/client/gateway"
	"github.com/dmskit/dmscli/internal/client/models"
	"github.com/dmskit/dmscli/internal/client/session"
	"github.com/dmskit/dmscli/internal/common"
	"github.com/dmskit/dmscli/internal/devserver"
	"github.com/stretchr/testify/require"
)

// env wires a gateway and a session manager against an in-process devserver,
// the same way cmd/cli does against the real backend.
type env struct {
	gw   *gateway.Gateway
	sess *session.Manager
	repo session.Repository
	cfg  devserver.Config
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	log := testLogger()

	db, err := session.InitDatabase(ctx, filepath.Join(t.TempDir(), "dms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := session.NewSQLiteRepository(db)
	sess := session.NewManager(repo, log)
	require.NoError(t, sess.Load(ctx))

	var cfg devserver.Config
	cfg.LoadDefaults()
	srv, err := devserver.NewServer(&cfg, devserver.NewStore(), log)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	gw := gateway.New(ts.URL+"/api", 5*time.Second, sess, log)
	gw.OnUnauthorized(func(ctx context.Context) { _ = sess.SignOut(ctx) })

	return &env{gw: gw, sess: sess, repo: repo, cfg: cfg}
}

func (e *env) loginAdmin(t *testing.T, ctx context.Context) {
	t.Helper()
	resp, err := e.gw.Login(ctx, e.cfg.AdminEmail, e.cfg.AdminPassword)
	require.NoError(t, err)
	require.NoError(t, e.sess.SignIn(ctx, resp.User, resp.Token))
}

func TestCreateAfterFetchAppendsToCollection(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAdmin(t, ctx)
	deps := NewDepartments(e.gw, testLogger())

	_, err := deps.Create(ctx, gateway.DepartmentInput{Name: "Engineering"})
	require.NoError(t, err)

	require.NoError(t, deps.FetchAll(ctx))
	require.Len(t, deps.Snapshot().Records, 1)

	created, err := deps.Create(ctx, gateway.DepartmentInput{Name: "Sales", Description: "field sales"})
	require.NoError(t, err)
	require.NotEmpty(t, created.Id)

	snap := deps.Snapshot()
	require.Equal(t, StatusIdle, snap.Status)
	require.Len(t, snap.Records, 2)
	require.Equal(t, "Sales", snap.Records[1].Name)
	require.Equal(t, created.Id, snap.Records[1].Id)
}

func TestDocumentLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAdmin(t, ctx)
	docs := NewDocuments(e.gw, testLogger())
	cats := NewCategories(e.gw, testLogger())

	cat, err := cats.Create(ctx, gateway.CategoryInput{Name: "Finance"})
	require.NoError(t, err)

	created, err := docs.Create(ctx, gateway.DocumentInput{
		Title:      "Q3 report",
		Type:       models.DocumentTypeReport,
		CategoryId: cat.Id,
	})
	require.NoError(t, err)
	require.Equal(t, "Finance", created.CategoryName)
	require.False(t, created.HasFile())

	uploaded, err := docs.Upload(ctx, created.Id, "q3.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	require.True(t, uploaded.HasFile())
	require.Equal(t, "q3.pdf", uploaded.FileName)
	require.EqualValues(t, 9, uploaded.FileSize)

	// The file-bearing record replaced the original in place.
	snap := docs.Snapshot()
	require.Len(t, snap.Records, 1)
	require.True(t, snap.Records[0].HasFile())

	updated, err := docs.Update(ctx, created.Id, gateway.DocumentInput{
		Title: "Q3 report (final)",
		Type:  models.DocumentTypeReport,
	})
	require.NoError(t, err)
	require.Equal(t, "Q3 report (final)", updated.Title)
	require.Equal(t, "Q3 report (final)", docs.Snapshot().Records[0].Title)

	require.NoError(t, docs.FetchByType(ctx, models.DocumentTypeContract))
	require.Empty(t, docs.Snapshot().Records)

	require.NoError(t, docs.FetchByType(ctx, models.DocumentTypeReport))
	require.Len(t, docs.Snapshot().Records, 1)

	require.NoError(t, docs.Delete(ctx, created.Id))
	require.Empty(t, docs.Snapshot().Records)
}

func TestDocumentsByUserFollowsCreator(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAdmin(t, ctx)
	admin := e.sess.Current().User
	docs := NewDocuments(e.gw, testLogger())

	_, err := docs.Create(ctx, gateway.DocumentInput{Title: "mine", Type: models.DocumentTypeDocument})
	require.NoError(t, err)

	require.NoError(t, docs.FetchByUser(ctx, admin.Id))
	require.Len(t, docs.Snapshot().Records, 1)

	require.NoError(t, docs.FetchByUser(ctx, "someone-else"))
	require.Empty(t, docs.Snapshot().Records)
}

func TestUserAdministration(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAdmin(t, ctx)
	users := NewUsers(e.gw, testLogger())
	deps := NewDepartments(e.gw, testLogger())

	dep, err := deps.Create(ctx, gateway.DepartmentInput{Name: "Support"})
	require.NoError(t, err)

	created, err := users.Create(ctx, gateway.UserInput{
		Name:         "Robin",
		Email:        "robin@dms.local",
		Password:     "secret1",
		Role:         models.RoleUser,
		Active:       true,
		DepartmentId: dep.Id,
	})
	require.NoError(t, err)

	require.NoError(t, users.FetchByDepartment(ctx, dep.Id))
	snap := users.Snapshot()
	require.Len(t, snap.Records, 1)
	require.Equal(t, created.Id, snap.Records[0].Id)

	require.NoError(t, users.FetchAll(ctx))
	require.Len(t, users.Snapshot().Records, 2)

	require.NoError(t, users.Delete(ctx, created.Id))
	require.Len(t, users.Snapshot().Records, 1)
}

func TestForbiddenLeavesSessionAndDataIntact(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	resp, err := e.gw.Register(ctx, gateway.RegisterInput{
		Name:     "Plain User",
		Email:    "plain@dms.local",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NoError(t, e.sess.SignIn(ctx, resp.User, resp.Token))

	users := NewUsers(e.gw, testLogger())
	err = users.FetchAll(ctx)
	require.Error(t, err)
	require.False(t, errors.Is(err, common.ErrorUnauthorized))

	snap := users.Snapshot()
	require.Equal(t, StatusError, snap.Status)
	require.Equal(t, "administrator role required", snap.Err)
	require.True(t, e.sess.Current().SignedIn())
}

func TestRejectedTokenTearsDownSession(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.loginAdmin(t, ctx)

	docs := NewDocuments(e.gw, testLogger())
	_, err := docs.Create(ctx, gateway.DocumentInput{Title: "keep", Type: models.DocumentTypeOther})
	require.NoError(t, err)

	// A token the server no longer accepts forces a full local sign-out.
	admin := e.sess.Current().User
	require.NoError(t, e.sess.SignIn(ctx, *admin, "not-a-valid-token"))

	err = docs.FetchAll(ctx)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	require.False(t, e.sess.Current().SignedIn())
	require.Empty(t, e.sess.Token())

	userRaw, err := e.repo.Get(ctx, "session.user")
	require.NoError(t, err)
	require.Nil(t, userRaw)
	tokenRaw, err := e.repo.Get(ctx, "session.token")
	require.NoError(t, err)
	require.Nil(t, tokenRaw)

	// The collection keeps its last good state for the next sign-in to reuse.
	snap := docs.Snapshot()
	require.Equal(t, StatusError, snap.Status)
	require.Len(t, snap.Records, 1)
}
