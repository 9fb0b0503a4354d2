package employee_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	employeeDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/permit-management/internal/employee"
	employeePostgres "github.com/frahmantamala/permit-management/internal/employee/postgres"
)

type sqliteEmployee struct {
	ID         int64  `gorm:"primaryKey"`
	EmployeeID string `gorm:"column:employee_id;uniqueIndex;not null"`
	Name       string `gorm:"not null"`
	Department string `gorm:"not null"`
	Grade      string `gorm:"not null"`
	Email      string `gorm:"uniqueIndex;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (sqliteEmployee) TableName() string { return "employees" }

var _ = Describe("Employee Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *employee.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteEmployee{})
		Expect(err).NotTo(HaveOccurred())

		repo := employeePostgres.NewEmployeeRepository(db)
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := employee.NewService(repo, slogger)
		handler = employee.NewHandler(service)

		Expect(repo.Create(&employeeDatamodel.Employee{
			EmployeeID: "EMP001",
			Name:       "John Smith",
			Department: "Engineering",
			Grade:      "Senior Software Engineer",
			Email:      "john.smith@company.com",
		})).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("GET /employees/by-id", func() {
		It("should return the directory record for a known identifier", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/by-id?employee_id=EMP001", nil)
			w := httptest.NewRecorder()

			handler.GetByEmployeeID(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response).To(HaveKeyWithValue("employee_id", "EMP001"))
			Expect(response).To(HaveKeyWithValue("name", "John Smith"))
			Expect(response).To(HaveKeyWithValue("department", "Engineering"))
			Expect(response).To(HaveKeyWithValue("grade", "Senior Software Engineer"))
			Expect(response).To(HaveKeyWithValue("email", "john.smith@company.com"))
		})

		It("should return 400 when the identifier is missing", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/by-id", nil)
			w := httptest.NewRecorder()

			handler.GetByEmployeeID(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var response map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response).To(HaveKeyWithValue("error", "Employee ID is required"))
		})

		It("should return 404 for an unknown identifier", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/by-id?employee_id=EMP999", nil)
			w := httptest.NewRecorder()

			handler.GetByEmployeeID(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var response map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response).To(HaveKeyWithValue("error", "Employee not found"))
		})
	})
})
