package notification_test

import (
	"errors"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/permit-management/internal"
	notificationDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/notification"
	"github.com/frahmantamala/permit-management/internal/notification"
	"github.com/frahmantamala/permit-management/internal/user"
)

func TestNotificationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Service Suite")
}

// Mock repository for testing
type mockNotificationRepository struct {
	notifications map[int64]*notificationDatamodel.Notification
	failForUser   int64
	nextID        int64
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{
		notifications: make(map[int64]*notificationDatamodel.Notification),
		nextID:        1,
	}
}

func (m *mockNotificationRepository) Create(n *notificationDatamodel.Notification) error {
	if m.failForUser != 0 && n.UserID == m.failForUser {
		return errors.New("insert failed")
	}
	n.ID = m.nextID
	m.nextID++
	n.CreatedAt = time.Now()
	n.UpdatedAt = time.Now()
	m.notifications[n.ID] = n
	return nil
}

func (m *mockNotificationRepository) GetByID(id int64) (*notificationDatamodel.Notification, error) {
	n, exists := m.notifications[id]
	if !exists {
		return nil, internal.ErrNotificationNotFound
	}
	return n, nil
}

func (m *mockNotificationRepository) ListByUser(userID int64, limit, offset int) ([]*notificationDatamodel.Notification, int64, error) {
	owned := make([]*notificationDatamodel.Notification, 0)
	for _, n := range m.notifications {
		if n.UserID == userID {
			owned = append(owned, n)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID > owned[j].ID })

	total := int64(len(owned))
	if offset >= len(owned) {
		return []*notificationDatamodel.Notification{}, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total, nil
}

func (m *mockNotificationRepository) MarkRead(id int64, readAt time.Time) error {
	if n, exists := m.notifications[id]; exists {
		n.Read = true
		n.ReadAt = &readAt
	}
	return nil
}

func (m *mockNotificationRepository) MarkAllRead(userID int64, readAt time.Time) error {
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			n.ReadAt = &readAt
		}
	}
	return nil
}

func (m *mockNotificationRepository) CountUnread(userID int64) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

type mockRecipientSource struct {
	users []*user.User
	err   error
}

func (m *mockRecipientSource) HRUsers() ([]*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

var _ = Describe("NotificationService", func() {
	var (
		service    *notification.Service
		mockRepo   *mockNotificationRepository
		recipients *mockRecipientSource
		logger     *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockNotificationRepository()
		recipients = &mockRecipientSource{users: []*user.User{
			{ID: 10, Name: "HR Admin", Role: "admin"},
			{ID: 11, Name: "HR Manager", Role: "hr"},
		}}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = notification.NewService(mockRepo, recipients, logger)
	})

	Describe("FanOutPermitRequestCreated", func() {
		It("should create one notification per HR user", func() {
			err := service.FanOutPermitRequestCreated(5, "John Smith", "Engineering", "Company Car")

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.notifications).To(HaveLen(2))
			for _, n := range mockRepo.notifications {
				Expect(n.Title).To(Equal("New Vehicle Permit Request"))
				Expect(n.Message).To(Equal("New permit request from John Smith (Engineering)"))
				Expect(n.Type).To(Equal(notificationDatamodel.TypePermitRequest))
			}
		})

		It("should skip a failing recipient and keep going", func() {
			recipients.users = append(recipients.users, &user.User{ID: 12, Name: "HR Assistant", Role: "hr"})
			mockRepo.failForUser = 11

			err := service.FanOutPermitRequestCreated(5, "John Smith", "Engineering", "Company Car")

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.notifications).To(HaveLen(2))
			for _, n := range mockRepo.notifications {
				Expect(n.UserID).ToNot(Equal(int64(11)))
			}
		})

		It("should fail when the recipient lookup fails", func() {
			recipients.err = errors.New("db down")

			err := service.FanOutPermitRequestCreated(5, "John Smith", "Engineering", "Company Car")

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.notifications).To(BeEmpty())
		})
	})

	Describe("MarkRead", func() {
		var owned *notificationDatamodel.Notification

		BeforeEach(func() {
			owned = &notificationDatamodel.Notification{
				UserID:  10,
				Title:   "New Vehicle Permit Request",
				Message: "New permit request from John Smith (Engineering)",
				Type:    notificationDatamodel.TypePermitRequest,
			}
			Expect(mockRepo.Create(owned)).To(Succeed())
		})

		It("should mark an owned notification read", func() {
			Expect(service.MarkRead(owned.ID, 10)).To(Succeed())
			Expect(mockRepo.notifications[owned.ID].Read).To(BeTrue())
			Expect(mockRepo.notifications[owned.ID].ReadAt).ToNot(BeNil())
		})

		It("should refuse to mark another user's notification", func() {
			err := service.MarkRead(owned.ID, 11)

			Expect(err).To(Equal(internal.ErrNotOwnNotification))
			Expect(mockRepo.notifications[owned.ID].Read).To(BeFalse())
		})

		It("should be a harmless duplicate for an already-read notification", func() {
			Expect(service.MarkRead(owned.ID, 10)).To(Succeed())
			Expect(service.MarkRead(owned.ID, 10)).To(Succeed())
		})

		It("should return not found for a missing notification", func() {
			Expect(service.MarkRead(99999, 10)).To(Equal(internal.ErrNotificationNotFound))
		})
	})

	Describe("MarkAllRead", func() {
		BeforeEach(func() {
			for i := 0; i < 3; i++ {
				Expect(mockRepo.Create(&notificationDatamodel.Notification{UserID: 10})).To(Succeed())
			}
			Expect(mockRepo.Create(&notificationDatamodel.Notification{UserID: 11})).To(Succeed())
		})

		It("should mark only the user's own notifications", func() {
			Expect(service.MarkAllRead(10)).To(Succeed())

			count, err := service.UnreadCount(10)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(BeZero())

			count, err = service.UnreadCount(11)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("UnreadCount", func() {
		It("should count only unread notifications", func() {
			first := &notificationDatamodel.Notification{UserID: 10}
			Expect(mockRepo.Create(first)).To(Succeed())
			Expect(mockRepo.Create(&notificationDatamodel.Notification{UserID: 10})).To(Succeed())
			Expect(service.MarkRead(first.ID, 10)).To(Succeed())

			count, err := service.UnreadCount(10)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("ListNotifications", func() {
		It("should page the user's notifications", func() {
			for i := 0; i < notification.DefaultPageSize+5; i++ {
				Expect(mockRepo.Create(&notificationDatamodel.Notification{UserID: 10})).To(Succeed())
			}

			page1, pagination, err := service.ListNotifications(10, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(page1).To(HaveLen(notification.DefaultPageSize))
			Expect(pagination.Total).To(Equal(int64(notification.DefaultPageSize + 5)))
			Expect(pagination.LastPage).To(Equal(2))

			page2, _, err := service.ListNotifications(10, 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(page2).To(HaveLen(5))
		})
	})
})
