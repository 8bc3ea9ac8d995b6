package stubserver

import (
	"time"

	"github.com/rekaindo/rekatrack/internal/core/domain"
)

// SeedDefaults loads a small fixture data set: one driver account and a
// handful of documents across all three statuses. Used by the standalone
// stub command so a fresh instance is immediately usable.
func (s *Server) SeedDefaults() error {
	if err := s.store.SeedAccount(domain.User{
		ID:          1,
		Name:        "Budi Santoso",
		Email:       "driver@ptrekaindo.co.id",
		PhoneNumber: "+62-812-0000-0001",
		Role:        domain.Role{Name: "Driver", Division: domain.Division{Name: "Logistik"}},
	}, "rahasia123"); err != nil {
		return err
	}

	issued := func(daysAgo int) domain.Date {
		return domain.Date{Time: time.Now().AddDate(0, 0, -daysAgo)}
	}

	s.store.SeedDocuments(
		domain.TravelDocument{
			ID:             101,
			DocumentNumber: "SJ/2026/08/101",
			IssueDate:      issued(0),
			Destination:    "Gudang Cikarang",
			Project:        "Proyek Tol Cisumdawu",
			Status:         domain.StatusNotSent,
			PONumber:       "PO-4410",
			Items: []domain.DocumentItem{
				{ID: 1, ItemCode: "BRG-001", ItemName: "Besi Beton 12mm", QtySend: "120", UnitID: 1, Unit: &domain.Unit{ID: 1, Name: "batang"}},
				{ID: 2, ItemCode: "BRG-014", ItemName: "Semen 50kg", QtySend: "40", UnitID: 2, Unit: &domain.Unit{ID: 2, Name: "sak"}},
			},
		},
		domain.TravelDocument{
			ID:             102,
			DocumentNumber: "SJ/2026/08/102",
			IssueDate:      issued(1),
			Destination:    "Site Karawang Barat",
			Project:        "Pabrik Karawang",
			Status:         domain.StatusInTransit,
			Items: []domain.DocumentItem{
				{ID: 3, ItemCode: "BRG-021", ItemName: "Pipa PVC 4 inch", QtySend: "60", UnitID: 1, Unit: &domain.Unit{ID: 1, Name: "batang"}},
			},
		},
		domain.TravelDocument{
			ID:             103,
			DocumentNumber: "SJ/2026/08/103",
			IssueDate:      issued(3),
			Destination:    "Gudang Surabaya",
			Project:        "Pelabuhan Teluk Lamong",
			Status:         domain.StatusDelivered,
			Items: []domain.DocumentItem{
				{ID: 4, ItemCode: "BRG-030", ItemName: "Kabel NYY 3x2.5", QtySend: "500", UnitID: 3, Unit: &domain.Unit{ID: 3, Name: "meter"}},
			},
		},
	)

	s.store.mu.Lock()
	s.store.confirmations[103] = &domain.DeliveryConfirmation{
		DocumentID:   103,
		ReceiverName: "Pak Hendra",
		ReceivedAt:   time.Now().AddDate(0, 0, -2),
		Note:         "diterima lengkap",
		PhotoPath:    "/storage/delivery-photos/seed-103.jpg",
	}
	s.store.mu.Unlock()

	return nil
}
