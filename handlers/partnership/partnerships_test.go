package partnership

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/campuslink/portal-api/authz"
)

// testApp wires the handler behind a stand-in identity middleware and a
// dry-run database, so a request can only succeed or fail on the handler's
// own input handling.
func testApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}

	h := NewPartnershipHandler(db, nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("identity", &authz.Identity{UserID: 1, Role: authz.RoleSuperAdmin})
		return c.Next()
	})
	app.Get("/partnerships/:id", h.GetPartnership)
	app.Delete("/partnerships/:id", h.DeletePartnership)
	return app
}

// Path ids must be numeric before they get anywhere near a query. A crafted
// id would otherwise ride into the WHERE clause as raw SQL.
func TestGetPartnershipRejectsNonNumericID(t *testing.T) {
	app := testApp(t)

	for _, target := range []string{
		"/partnerships/abc",
		"/partnerships/1%20OR%201=1",
		"/partnerships/1;%20DROP%20TABLE%20partnerships",
	} {
		res, err := app.Test(httptest.NewRequest("GET", target, nil))
		if err != nil {
			t.Fatalf("%s: %v", target, err)
		}
		if res.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, res.StatusCode, fiber.StatusBadRequest)
		}
	}
}

func TestDeletePartnershipRejectsNonNumericID(t *testing.T) {
	app := testApp(t)

	res, err := app.Test(httptest.NewRequest("DELETE", "/partnerships/1%20OR%201=1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", res.StatusCode, fiber.StatusBadRequest)
	}
}
