package integration

import (
	"context"
	"net/http"
	"testing"

	"gudlft/internal/bookings/service"
	"gudlft/pkg/client"
	apperrors "gudlft/pkg/errors"
	"gudlft/pkg/model"
	"gudlft/test/integration/testutil"
)

func TestSummary_KnownEmail(t *testing.T) {
	env := testutil.Setup(t)

	resp, err := env.Client.Summary(context.Background(), "john@simplylift.co")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	summary, err := client.DecodeData[model.Summary](resp)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Club.Name != "Simply Lift" || summary.Club.Points != 13 {
		t.Errorf("unexpected club: %+v", summary.Club)
	}
	if len(summary.Competitions) != 2 {
		t.Fatalf("expected 2 competitions, got %d", len(summary.Competitions))
	}
	if !summary.Competitions[0].Bookable || summary.Competitions[1].Bookable {
		t.Errorf("expected only the future competition to be bookable: %+v", summary.Competitions)
	}
}

func TestSummary_UnknownEmail(t *testing.T) {
	env := testutil.Setup(t)

	resp, err := env.Client.Summary(context.Background(), "invalid@mail.com")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertError(t, resp, http.StatusNotFound, apperrors.CodeNotFound, service.MsgUnknownEmail)
}

func TestOpenBooking(t *testing.T) {
	env := testutil.Setup(t)
	ctx := context.Background()

	resp, err := env.Client.OpenBooking(ctx, "Spring Festival", "Simply Lift")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp, err = env.Client.OpenBooking(ctx, "Fall Classic", "Simply Lift")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertError(t, resp, http.StatusConflict, apperrors.CodeClosed, service.MsgPastCompetition)

	resp, err = env.Client.OpenBooking(ctx, "Full Classic", "Simply Lift")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertError(t, resp, http.StatusNotFound, apperrors.CodeNotFound, service.MsgSomethingWrong)
}

func TestReady(t *testing.T) {
	env := testutil.Setup(t)

	resp, err := env.Client.Ready(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var body struct {
		Clubs        int `json:"clubs"`
		Competitions int `json:"competitions"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		t.Fatal(err)
	}
	if body.Clubs != 3 || body.Competitions != 2 {
		t.Errorf("unexpected counts: %+v", body)
	}
}
