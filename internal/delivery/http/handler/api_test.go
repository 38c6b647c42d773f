package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobni/internal/delivery/http/dto"
	"jobni/internal/delivery/http/handler"
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/delivery/http/routes"
	"jobni/internal/domain/conversation"
	"jobni/internal/invoice"
	"jobni/internal/pkg/jwt"
	"jobni/internal/pkg/response"
	"jobni/internal/testutil/memstore"
	"jobni/internal/usecase"
	ucapplication "jobni/internal/usecase/application"
	ucauth "jobni/internal/usecase/auth"
	ucconversation "jobni/internal/usecase/conversation"
	ucjob "jobni/internal/usecase/job"
	ucnotification "jobni/internal/usecase/notification"
	ucrating "jobni/internal/usecase/rating"
	ucreport "jobni/internal/usecase/report"
	ucsavedjob "jobni/internal/usecase/savedjob"
	ucuser "jobni/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPublisher struct{}

func (nopPublisher) PublishMessage(context.Context, conversation.Message) error { return nil }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newTestApp(t *testing.T, db usecase.Pinger) *fiber.App {
	t.Helper()

	st := memstore.New()
	tokens := jwt.NewHMACService("access", "refresh", time.Hour, 24*time.Hour)
	authSvc := ucauth.NewService(st.Users(), tokens)
	convSvc := ucconversation.NewService(st, nopPublisher{})

	h := routes.Handlers{
		Auth:          middleware.NewAuthMiddleware(authSvc).Middleware(),
		Health:        handler.NewHealthHandler(usecase.NewHealthUsecase(db, nil)),
		Account:       handler.NewAuthHandler(authSvc),
		Users:         handler.NewUserHandler(ucuser.NewService(st.Users())),
		Jobs:          handler.NewJobsHandler(ucjob.NewService(st.Jobs(), st.Users(), nil, 0)),
		Applications:  handler.NewApplicationHandler(ucapplication.NewService(st, nopPublisher{})),
		SavedJobs:     handler.NewSavedJobHandler(ucsavedjob.NewService(st.SavedJobs(), st.Jobs())),
		Conversations: handler.NewConversationHandler(convSvc, 3*time.Second),
		Reports:       handler.NewReportHandler(ucreport.NewService(st, invoice.NewHTMLRenderer())),
		Ratings:       handler.NewRatingHandler(ucrating.NewService(st)),
		Notifications: handler.NewNotificationHandler(ucnotification.NewService(st.Notifications())),
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())
	routes.NewRegistry(h).Register(app)
	return app
}

type client struct {
	t   *testing.T
	app *fiber.App
}

func (c client) do(method, path, token string, body any) *http.Response {
	c.t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := c.app.Test(req)
	require.NoError(c.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func detail(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[response.ErrorBody](t, resp).Detail
}

func register(t *testing.T, c client, name, email, role string, company *string) dto.AuthResponse {
	t.Helper()
	resp := c.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:        name,
		Email:       email,
		Password:    "secret1",
		Role:        role,
		CompanyName: company,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.AuthResponse](t, resp)
}

func strPtr(s string) *string { return &s }

func TestAPI_HiringFlow(t *testing.T) {
	c := client{t: t, app: newTestApp(t, pinger{})}

	employer := register(t, c, "Nora", "nora@events.sa", "employer", strPtr("Riyadh Events Co"))
	seeker := register(t, c, "Saad", "saad@mail.sa", "job_seeker", nil)

	resp := c.do(http.MethodPost, "/api/jobs", employer.AccessToken, dto.CreateJobRequest{
		Title:         "Event Usher",
		Description:   "Guide guests at the expo",
		Location:      "Riyadh",
		Category:      "events",
		DurationType:  "days_4",
		DurationValue: "4 days",
		Salary:        1200,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[dto.JobResponse](t, resp)
	assert.Equal(t, "Riyadh Events Co", created.CompanyName)

	resp = c.do(http.MethodGet, "/api/jobs?category=events", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.JobResponse](t, resp), 1)

	resp = c.do(http.MethodPost, "/api/applications", seeker.AccessToken, dto.ApplyRequest{JobID: created.ID.String(), Message: "Available all week"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	app := decode[dto.ApplicationResponse](t, resp)
	assert.Equal(t, "pending", string(app.Status))

	resp = c.do(http.MethodPost, "/api/applications", seeker.AccessToken, dto.ApplyRequest{JobID: created.ID.String()})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Already applied to this job", detail(t, resp))

	// No invoice before acceptance.
	resp = c.do(http.MethodGet, "/api/reports/invoice/"+app.ID.String(), seeker.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodPut, "/api/applications/"+app.ID.String(), employer.AccessToken, dto.UpdateApplicationStatusRequest{Status: "accepted"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "accepted", string(decode[dto.ApplicationResponse](t, resp).Status))

	resp = c.do(http.MethodGet, "/api/conversations", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	convs := decode[[]dto.ConversationResponse](t, resp)
	require.Len(t, convs, 1)
	convID := convs[0].ID.String()

	resp = c.do(http.MethodGet, "/api/conversations/"+convID+"/messages", employer.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get(handler.HeaderPollInterval))
	msgs := decode[[]dto.MessageResponse](t, resp)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsSystem)

	resp = c.do(http.MethodPost, "/api/conversations/"+convID+"/messages", seeker.AccessToken, dto.PostMessageRequest{MessageText: "See you Thursday"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	posted := decode[dto.MessageResponse](t, resp)
	assert.Equal(t, "See you Thursday", posted.MessageText)

	resp = c.do(http.MethodGet, "/api/conversations/"+convID+"/messages?after="+msgs[0].ID.String(), employer.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	since := decode[[]dto.MessageResponse](t, resp)
	require.Len(t, since, 1)
	assert.Equal(t, posted.ID, since[0].ID)

	resp = c.do(http.MethodGet, "/api/reports/invoice/"+app.ID.String(), employer.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("attachment; filename=invoice_%s.html", app.ID), resp.Header.Get(fiber.HeaderContentDisposition))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, string(body), "Event Usher")

	resp = c.do(http.MethodGet, "/api/notifications", employer.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[[]dto.NotificationResponse](t, resp))
}

func TestAPI_ErrorBodies(t *testing.T) {
	c := client{t: t, app: newTestApp(t, pinger{})}
	seeker := register(t, c, "Saad", "saad@mail.sa", "job_seeker", nil)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		detail string
	}{
		{"missing token", http.MethodGet, "/api/applications", "", nil, http.StatusUnauthorized, "Not authenticated"},
		{"bad token", http.MethodGet, "/api/applications", "garbage", nil, http.StatusUnauthorized, ""},
		{"bad job id", http.MethodGet, "/api/jobs/not-a-uuid", "", nil, http.StatusBadRequest, "Invalid job id"},
		{"unknown job", http.MethodGet, "/api/jobs/6f1c0a52-3d7e-4a8e-9d0b-2f6a1c9e7b41", "", nil, http.StatusNotFound, ""},
		{"seeker posts job", http.MethodPost, "/api/jobs", seeker.AccessToken, dto.CreateJobRequest{Title: "x"}, http.StatusForbidden, "Only employers can post jobs"},
		{"seeker reads admin stats", http.MethodGet, "/api/admin/stats", seeker.AccessToken, nil, http.StatusForbidden, ""},
		{"bad limit", http.MethodGet, "/api/jobs?limit=ten", "", nil, http.StatusBadRequest, "limit must be an integer"},
		{"bad status", http.MethodPut, "/api/applications/6f1c0a52-3d7e-4a8e-9d0b-2f6a1c9e7b41", seeker.AccessToken, dto.UpdateApplicationStatusRequest{Status: "archived"}, http.StatusBadRequest, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := c.do(tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			got := detail(t, resp)
			if tc.detail != "" {
				assert.Equal(t, tc.detail, got)
			} else {
				assert.NotEmpty(t, got)
			}
		})
	}
}

func TestAPI_AuthMeAndRefresh(t *testing.T) {
	c := client{t: t, app: newTestApp(t, pinger{})}
	seeker := register(t, c, "Saad", "SAAD@mail.sa", "job_seeker", nil)

	resp := c.do(http.MethodGet, "/api/auth/me", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "saad@mail.sa", decode[dto.UserResponse](t, resp).Email)

	resp = c.do(http.MethodPost, "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: seeker.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[dto.AuthResponse](t, resp).AccessToken)

	// An access token is not a refresh token.
	resp = c.do(http.MethodPost, "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: seeker.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodPut, "/api/auth/me", seeker.AccessToken, dto.UpdateProfileRequest{Skills: &[]string{"driving"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"driving"}, decode[dto.UserResponse](t, resp).Skills)

	resp = c.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Name: "Root", Email: "root@jobni.sa", Password: "secret1", Role: "admin"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_SavedJobs(t *testing.T) {
	c := client{t: t, app: newTestApp(t, pinger{})}
	employer := register(t, c, "Nora", "nora@events.sa", "employer", strPtr("Riyadh Events Co"))
	seeker := register(t, c, "Saad", "saad@mail.sa", "job_seeker", nil)

	resp := c.do(http.MethodPost, "/api/jobs", employer.AccessToken, dto.CreateJobRequest{
		Title: "Cashier", Description: "Weekend shifts", Location: "Jeddah",
		Category: "retail", DurationType: "hours_8", Salary: 200,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	jobID := decode[dto.JobResponse](t, resp).ID.String()

	resp = c.do(http.MethodPost, "/api/saved-jobs/"+jobID, seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Job saved successfully", decode[response.MessageBody](t, resp).Message)

	resp = c.do(http.MethodPost, "/api/saved-jobs/"+jobID, seeker.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodGet, "/api/saved-jobs", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{jobID}, decode[[]string](t, resp))

	resp = c.do(http.MethodDelete, "/api/saved-jobs/"+jobID, seeker.AccessToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodDelete, "/api/jobs/"+jobID, employer.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = c.do(http.MethodGet, "/api/jobs/"+jobID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "closed", string(decode[dto.JobResponse](t, resp).Status))
}

func TestAPI_Health(t *testing.T) {
	c := client{t: t, app: newTestApp(t, pinger{})}
	resp := c.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[usecase.HealthStatus](t, resp).Status)

	c = client{t: t, app: newTestApp(t, pinger{err: errors.New("down")})}
	resp = c.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.True(t, strings.Contains(readAll(t, resp), `"unavailable"`))
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
