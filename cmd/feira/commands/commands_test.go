package commands_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"agrofeira/cmd/feira/commands"
	"agrofeira/internal/config"
	"agrofeira/internal/database"
	"agrofeira/internal/server"
	"agrofeira/pkg/client"
	"agrofeira/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fiberTransport struct {
	app *fiber.App
}

func (t fiberTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.app.Test(req, -1)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

var idPattern = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

type cli struct {
	t     *testing.T
	opts  commands.Options
	store *client.MemoryStore
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open(config.DBConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	app := server.New(server.Deps{
		DB:         db,
		Tokens:     token.NewManager("test_jwt_secret", time.Hour),
		BcryptCost: bcrypt.MinCost,
	})
	store := client.NewMemoryStore()
	return &cli{
		t:     t,
		store: store,
		opts: commands.Options{
			HTTPClient: &http.Client{Transport: fiberTransport{app: app}},
			Store:      store,
		},
	}
}

// run executes one invocation and returns its stdout and error.
func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	cmd := commands.NewRootCmd(c.opts)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", "http://feira.test"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func (c *cli) registerAndLogin(email, cpf string) {
	c.t.Helper()
	c.mustRun("register",
		"--name", "Ana Souza",
		"--establishment", "Sítio Boa Vista",
		"--email", email,
		"--phone", "11999990000",
		"--cpf", cpf,
		"--address", "Rua das Flores, 10",
		"--password", "Senha123",
	)
	c.mustRun("login", "--email", email, "--password", "Senha123")
}

func createdID(t *testing.T, out string) string {
	t.Helper()
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestRegisterLoginWhoamiLogout(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("whoami")
	assert.Contains(t, out, "Not logged in")

	out = c.mustRun("register",
		"--name", "Ana Souza",
		"--email", "ana@feira.com",
		"--phone", "11999990000",
		"--cpf", "529.982.247-25",
		"--address", "Rua das Flores, 10",
		"--password", "Senha123",
	)
	assert.Contains(t, out, "Registered Ana Souza (ana@feira.com)")

	out = c.mustRun("login", "--email", "ana@feira.com", "--password", "Senha123")
	assert.Contains(t, out, "Logged in as Ana Souza")

	token, err := c.store.Get(client.TokenKey)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	out = c.mustRun("whoami")
	assert.Contains(t, out, "Ana Souza <ana@feira.com>")

	out = c.mustRun("logout")
	assert.Contains(t, out, "Logged out")
	_, err = c.store.Get(client.TokenKey)
	assert.ErrorIs(t, err, client.ErrNoValue)
}

func TestLoginWrongPassword(t *testing.T) {
	c := newCLI(t)
	c.registerAndLogin("ana@feira.com", "52998224725")
	c.mustRun("logout")

	_, err := c.run("login", "--email", "ana@feira.com", "--password", "Errada123")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestRegisterDuplicate(t *testing.T) {
	c := newCLI(t)
	c.registerAndLogin("ana@feira.com", "52998224725")

	_, err := c.run("register",
		"--name", "Outra",
		"--email", "ana@feira.com",
		"--phone", "11999990000",
		"--cpf", "11144477735",
		"--address", "Rua B, 2",
		"--password", "Senha123",
	)
	assert.True(t, client.IsStatus(err, http.StatusBadRequest))
}

func TestProfileCommands(t *testing.T) {
	c := newCLI(t)
	c.registerAndLogin("ana@feira.com", "52998224725")

	out := c.mustRun("profile", "show")
	assert.Contains(t, out, "Ana Souza")
	assert.Contains(t, out, "Sítio Boa Vista")
	assert.Contains(t, out, "Rua das Flores, 10")

	_, err := c.run("profile", "update", "--current-password", "Errada123", "--name", "Ana S.")
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))

	out = c.mustRun("profile", "update", "--current-password", "Senha123", "--name", "Ana S.", "--phone", "11888880000")
	assert.Contains(t, out, "Profile updated")
	assert.Contains(t, out, "Ana S.")
	assert.Contains(t, out, "11888880000")

	out = c.mustRun("profile", "password", "--current", "Senha123", "--new", "NovaSenha1", "--confirm", "NovaSenha1")
	assert.Contains(t, out, "Password changed")

	c.mustRun("logout")
	c.mustRun("login", "--email", "ana@feira.com", "--password", "NovaSenha1")

	out = c.mustRun("profile", "delete", "--current-password", "NovaSenha1")
	assert.Contains(t, out, "Account deleted")

	_, err = c.run("profile", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestCategoriesRequireLogin(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("categories", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestCategoryAndProductLifecycle(t *testing.T) {
	c := newCLI(t)
	c.registerAndLogin("ana@feira.com", "52998224725")

	out := c.mustRun("categories", "list")
	assert.Contains(t, out, "No categories yet")

	out = c.mustRun("categories", "create", "Hortaliças")
	assert.Contains(t, out, "Created category Hortaliças")
	categoryID := createdID(t, out)

	_, err := c.run("categories", "create", "Hortaliças")
	assert.True(t, client.IsStatus(err, http.StatusBadRequest))

	out = c.mustRun("categories", "list")
	assert.Contains(t, out, categoryID)
	assert.Contains(t, out, "Hortaliças")

	out = c.mustRun("products", "save",
		"--name", "Tomate",
		"--description", "Tomate italiano",
		"--price", "12,50",
		"--stock", "40",
		"--unit", "kg",
		"--category", categoryID,
	)
	assert.Contains(t, out, "Created product Tomate")
	productID := createdID(t, out)

	out = c.mustRun("products", "show", productID)
	assert.Contains(t, out, "Tomate italiano")
	assert.Contains(t, out, "12.50 per kg")
	assert.Contains(t, out, "Hortaliças")
	assert.Contains(t, out, client.PlaceholderImageURL)

	out = c.mustRun("products", "save", "--id", productID, "--price", "10")
	assert.Contains(t, out, "Updated product Tomate")

	out = c.mustRun("products", "show", productID)
	assert.Contains(t, out, "10.00 per kg")
	assert.Contains(t, out, "Tomate italiano")

	out = c.mustRun("products", "list", "--search", "tom")
	assert.Contains(t, out, "Tomate")

	out = c.mustRun("products", "list", "--search", "alface")
	assert.Contains(t, out, "No products found")

	out = c.mustRun("products", "list", "--mine")
	assert.Contains(t, out, productID)

	out = c.mustRun("products", "delete", productID)
	assert.Contains(t, out, "Deleted product")

	_, err = c.run("products", "show", productID)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))

	out = c.mustRun("categories", "rename", categoryID, "Verduras")
	assert.Contains(t, out, "Renamed category to Verduras")

	out = c.mustRun("categories", "delete", categoryID)
	assert.Contains(t, out, "Deleted category")
}

func TestProductSaveMissingFields(t *testing.T) {
	c := newCLI(t)
	c.registerAndLogin("ana@feira.com", "52998224725")

	_, err := c.run("products", "save", "--name", "Tomate")
	assert.ErrorIs(t, err, client.ErrMissingFields)
}

func TestProductsOfAnotherProducer(t *testing.T) {
	c := newCLI(t)
	c.registerAndLogin("ana@feira.com", "52998224725")
	out := c.mustRun("categories", "create", "Frutas")
	categoryID := createdID(t, out)
	out = c.mustRun("products", "save",
		"--name", "Banana", "--price", "5", "--stock", "10", "--unit", "dz", "--category", categoryID)
	productID := createdID(t, out)
	c.mustRun("logout")

	c.registerAndLogin("bia@feira.com", "11144477735")
	_, err := c.run("products", "delete", productID)
	assert.True(t, client.IsStatus(err, http.StatusForbidden))

	out = c.mustRun("products", "list", "--mine")
	assert.Contains(t, out, "No products found")

	out = c.mustRun("products", "list")
	assert.Contains(t, out, "Banana")
}

func TestExecuteRendersErrors(t *testing.T) {
	opts := commands.Options{
		HTTPClient: &http.Client{Transport: failingTransport{}},
		Store:      client.NewMemoryStore(),
	}
	code := commands.Execute(context.Background(), opts, []string{"products", "list"})
	assert.Equal(t, 1, code)
}

func TestEnvironmentOverridesAPIURL(t *testing.T) {
	var seen string
	opts := commands.Options{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			seen = req.URL.Host
			return nil, errors.New("stop")
		})},
		Store: client.NewMemoryStore(),
	}
	t.Setenv("FEIRA_API_URL", "http://api.feira.example")

	cmd := commands.NewRootCmd(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"products", "list"})
	require.Error(t, cmd.Execute())
	assert.Equal(t, "api.feira.example", seen)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
