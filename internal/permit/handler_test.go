package permit_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/permit-management/internal/auth"
	"github.com/frahmantamala/permit-management/internal/core/events"
	"github.com/frahmantamala/permit-management/internal/employee"
	"github.com/frahmantamala/permit-management/internal/permit"
	"github.com/go-chi/chi"
)

var _ = Describe("Permit Handler Integration", func() {
	var (
		handler  *permit.Handler
		mockRepo *mockPermitRepository
	)

	BeforeEach(func() {
		mockRepo = newMockPermitRepository()
		directory := newMockDirectory()
		directory.employees["EMP001"] = &employee.Employee{
			ID:         1,
			EmployeeID: "EMP001",
			Name:       "John Smith",
			Department: "Engineering",
			Grade:      "Senior Software Engineer",
			Email:      "john.smith@company.com",
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := permit.NewService(mockRepo, directory, events.NewEventBus(logger), logger)
		handler = permit.NewHandler(service)
	})

	submissionBody := func() string {
		body, err := json.Marshal(permit.CreatePermitRequestDTO{
			EmployeeID:    "EMP001",
			StartDatetime: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
			EndDatetime:   time.Now().Add(26 * time.Hour).Format(time.RFC3339),
			VehicleType:   "Company Car",
			LicensePlate:  "b 1234 xyz",
		})
		Expect(err).NotTo(HaveOccurred())
		return string(body)
	}

	Describe("POST /permit-requests", func() {
		It("should respond 201 with the created request and a confirmation message", func() {
			req := httptest.NewRequest(http.MethodPost, "/permit-requests", strings.NewReader(submissionBody()))
			w := httptest.NewRecorder()

			handler.CreatePermitRequest(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var response struct {
				Request *permit.PermitRequest `json:"request"`
				Message string                `json:"message"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Message).To(Equal("Vehicle usage permit request submitted successfully."))
			Expect(response.Request.Status).To(Equal(permit.StatusPending))
			Expect(response.Request.LicensePlate).To(Equal("B 1234 XYZ"))
		})

		It("should respond 422 with the collected field errors", func() {
			req := httptest.NewRequest(http.MethodPost, "/permit-requests", strings.NewReader(`{}`))
			w := httptest.NewRecorder()

			handler.CreatePermitRequest(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))

			var response struct {
				Error struct {
					Code    string `json:"code"`
					Details struct {
						Errors []struct {
							Field   string `json:"field"`
							Message string `json:"message"`
						} `json:"errors"`
					} `json:"details"`
				} `json:"error"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Error.Code).To(Equal("VALIDATION_FAILED"))

			fields := make([]string, 0)
			for _, fieldErr := range response.Error.Details.Errors {
				fields = append(fields, fieldErr.Field)
			}
			Expect(fields).To(ContainElements("employee_id", "start_datetime", "end_datetime", "vehicle_type", "license_plate"))
		})

		It("should respond 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/permit-requests", strings.NewReader(`{`))
			w := httptest.NewRecorder()

			handler.CreatePermitRequest(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PATCH /permit-requests/{id}", func() {
		var createdID int64

		reviewRequest := func(id int64, body string) *http.Request {
			req := httptest.NewRequest(http.MethodPatch, "/permit-requests/"+strconv.FormatInt(id, 10), strings.NewReader(body))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strconv.FormatInt(id, 10))
			ctx := auth.ContextWithUser(req.Context(), &auth.User{ID: 42, Name: "HR Admin", Role: "admin"})
			return req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
		}

		BeforeEach(func() {
			createReq := httptest.NewRequest(http.MethodPost, "/permit-requests", strings.NewReader(submissionBody()))
			w := httptest.NewRecorder()
			handler.CreatePermitRequest(w, createReq)
			Expect(w.Code).To(Equal(http.StatusCreated))

			var response struct {
				Request *permit.PermitRequest `json:"request"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			createdID = response.Request.ID
		})

		It("should approve a pending request and name the outcome", func() {
			w := httptest.NewRecorder()

			handler.Review(w, reviewRequest(createdID, `{"status":"approved"}`))

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Request *permit.PermitRequest `json:"request"`
				Message string                `json:"message"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Message).To(Equal("Permit request approved successfully."))
			Expect(*response.Request.ReviewedBy).To(Equal(int64(42)))
		})

		It("should respond 422 for an illegal decision", func() {
			w := httptest.NewRecorder()

			handler.Review(w, reviewRequest(createdID, `{"status":"pending"}`))

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should respond 401 without an authenticated user", func() {
			req := httptest.NewRequest(http.MethodPatch, "/permit-requests/1", strings.NewReader(`{"status":"approved"}`))
			w := httptest.NewRecorder()

			handler.Review(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
