package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fleet/src/config"
	"fleet/src/models"
	"fleet/src/repositories"

	"github.com/jackc/pgx/v5"
)

// store is an in-memory database shared by the fake repositories.
type store struct {
	mu           sync.Mutex
	assets       map[string]*models.Asset
	vehicles     map[string]*models.Vehicle
	chassis      map[string]*models.Chassis
	equipments   map[string]*models.Equipment
	reminders    map[string]*models.Reminder
	spareparts   map[string]*models.Sparepart
	maintenances map[string]*models.Maintenance
	items        map[string][]models.MaintenanceSparepart
	users        map[string]*models.User
	drivers      map[string]*models.Driver
	locks        []string
	txCount      int
}

func newStore() *store {
	return &store{
		assets:       map[string]*models.Asset{},
		vehicles:     map[string]*models.Vehicle{},
		chassis:      map[string]*models.Chassis{},
		equipments:   map[string]*models.Equipment{},
		reminders:    map[string]*models.Reminder{},
		spareparts:   map[string]*models.Sparepart{},
		maintenances: map[string]*models.Maintenance{},
		items:        map[string][]models.MaintenanceSparepart{},
		users:        map[string]*models.User{},
		drivers:      map[string]*models.Driver{},
	}
}

func testConfig() *config.Config {
	code := func(prefix string) config.AssetCodeConfig {
		return config.AssetCodeConfig{Prefix: prefix, PadLength: 7, MaxNumber: 99999999}
	}
	return &config.Config{
		Reminders: config.RemindersConfig{STNKIntervalMonths: 12, KIRIntervalMonths: 6, LeadDays: 30},
		AssetCodes: map[string]config.AssetCodeConfig{
			"vehicle":     code("TRK-"),
			"chassis":     code("CHS-"),
			"equipment":   code("EQP-"),
			"maintenance": code("MNT-"),
		},
	}
}

// fakeTx runs fn without a real transaction.
type fakeTx struct{ s *store }

func (f fakeTx) WithTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	f.s.mu.Lock()
	f.s.txCount++
	f.s.mu.Unlock()
	return fn(nil)
}

type fakeCodes struct{ s *store }

func (f fakeCodes) Lock(_ context.Context, prefix string, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.locks = append(f.s.locks, prefix)
	return nil
}

func (f fakeCodes) Last(_ context.Context, source repositories.CodeSource, prefix string, _ pgx.Tx) (*string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var codes []string
	if source == repositories.MaintenanceRecordNumbers {
		for _, m := range f.s.maintenances {
			codes = append(codes, m.RecordNumber)
		}
	} else {
		for _, a := range f.s.assets {
			codes = append(codes, a.AssetCode)
		}
	}

	var last *string
	for _, c := range codes {
		if !strings.HasPrefix(c, prefix) {
			continue
		}
		if last == nil || len(c) > len(*last) || (len(c) == len(*last) && c > *last) {
			c := c
			last = &c
		}
	}
	return last, nil
}

type fakeAssets struct{ s *store }

func (f fakeAssets) GetByID(_ context.Context, id string) (*models.Asset, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.assets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f fakeAssets) Create(_ context.Context, asset *models.Asset, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, a := range f.s.assets {
		if a.AssetCode == asset.AssetCode {
			return repositories.ErrDuplicate
		}
	}
	asset.CreatedAt, asset.UpdatedAt = time.Now(), time.Now()
	cp := *asset
	f.s.assets[asset.ID] = &cp
	return nil
}

func (f fakeAssets) Update(_ context.Context, asset *models.Asset, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.assets[asset.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *asset
	f.s.assets[asset.ID] = &cp
	return nil
}

func (f fakeAssets) DeleteByIDs(_ context.Context, ids []string, _ pgx.Tx) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := f.s.assets[id]; ok {
			delete(f.s.assets, id)
			n++
		}
	}
	return n, nil
}

type fakeVehicles struct{ s *store }

func (f fakeVehicles) withAsset(v *models.Vehicle) models.Vehicle {
	cp := *v
	if a, ok := f.s.assets[v.AssetID]; ok {
		ac := *a
		cp.Asset = &ac
	}
	return cp
}

func (f fakeVehicles) GetAll(_ context.Context) ([]models.Vehicle, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.Vehicle{}
	for _, v := range f.s.vehicles {
		list = append(list, f.withAsset(v))
	}
	return list, nil
}

func (f fakeVehicles) GetByID(_ context.Context, id string) (*models.Vehicle, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.vehicles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := f.withAsset(v)
	return &cp, nil
}

func (f fakeVehicles) GetByAssetID(_ context.Context, assetID string) (*models.Vehicle, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, v := range f.s.vehicles {
		if v.AssetID == assetID {
			cp := f.withAsset(v)
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f fakeVehicles) GetByIDs(_ context.Context, ids []string, _ pgx.Tx) ([]models.Vehicle, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.Vehicle{}
	for _, id := range ids {
		if v, ok := f.s.vehicles[id]; ok {
			list = append(list, *v)
		}
	}
	return list, nil
}

func (f fakeVehicles) Create(_ context.Context, v *models.Vehicle, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *v
	cp.Asset = nil
	f.s.vehicles[v.ID] = &cp
	return nil
}

func (f fakeVehicles) Update(_ context.Context, v *models.Vehicle, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.vehicles[v.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *v
	cp.Asset = nil
	f.s.vehicles[v.ID] = &cp
	return nil
}

func (f fakeVehicles) DeleteByIDs(_ context.Context, ids []string, _ pgx.Tx) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := f.s.vehicles[id]; ok {
			delete(f.s.vehicles, id)
			n++
		}
	}
	return n, nil
}

type fakeChassis struct{ s *store }

func (f fakeChassis) GetAll(_ context.Context) ([]models.Chassis, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.Chassis{}
	for _, c := range f.s.chassis {
		list = append(list, *c)
	}
	return list, nil
}

func (f fakeChassis) GetByID(_ context.Context, id string) (*models.Chassis, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.chassis[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	if a, ok := f.s.assets[c.AssetID]; ok {
		ac := *a
		cp.Asset = &ac
	}
	return &cp, nil
}

func (f fakeChassis) GetByAssetID(_ context.Context, assetID string) (*models.Chassis, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.chassis {
		if c.AssetID == assetID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f fakeChassis) GetByIDs(_ context.Context, ids []string, _ pgx.Tx) ([]models.Chassis, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.Chassis{}
	for _, id := range ids {
		if c, ok := f.s.chassis[id]; ok {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (f fakeChassis) Create(_ context.Context, c *models.Chassis, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *c
	cp.Asset = nil
	f.s.chassis[c.ID] = &cp
	return nil
}

func (f fakeChassis) Update(_ context.Context, c *models.Chassis, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *c
	cp.Asset = nil
	f.s.chassis[c.ID] = &cp
	return nil
}

func (f fakeChassis) DeleteByIDs(_ context.Context, ids []string, _ pgx.Tx) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := f.s.chassis[id]; ok {
			delete(f.s.chassis, id)
			n++
		}
	}
	return n, nil
}

type fakeEquipments struct{ s *store }

func (f fakeEquipments) GetAll(_ context.Context) ([]models.Equipment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.Equipment{}
	for _, e := range f.s.equipments {
		list = append(list, *e)
	}
	return list, nil
}

func (f fakeEquipments) GetByID(_ context.Context, id string) (*models.Equipment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	e, ok := f.s.equipments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *e
	if a, ok := f.s.assets[e.AssetID]; ok {
		ac := *a
		cp.Asset = &ac
	}
	return &cp, nil
}

func (f fakeEquipments) GetByAssetID(_ context.Context, assetID string) (*models.Equipment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, e := range f.s.equipments {
		if e.AssetID == assetID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f fakeEquipments) GetByIDs(_ context.Context, ids []string, _ pgx.Tx) ([]models.Equipment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.Equipment{}
	for _, id := range ids {
		if e, ok := f.s.equipments[id]; ok {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (f fakeEquipments) Create(_ context.Context, e *models.Equipment, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *e
	cp.Asset = nil
	f.s.equipments[e.ID] = &cp
	return nil
}

func (f fakeEquipments) Update(_ context.Context, e *models.Equipment, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *e
	cp.Asset = nil
	f.s.equipments[e.ID] = &cp
	return nil
}

func (f fakeEquipments) DeleteByIDs(_ context.Context, ids []string, _ pgx.Tx) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := f.s.equipments[id]; ok {
			delete(f.s.equipments, id)
			n++
		}
	}
	return n, nil
}

type fakeReminders struct{ s *store }

func (f fakeReminders) GetByID(_ context.Context, id string) (*models.Reminder, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.reminders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f fakeReminders) withAsset(r *models.Reminder) models.ReminderWithAsset {
	out := models.ReminderWithAsset{Reminder: *r}
	if a, ok := f.s.assets[r.AssetID]; ok {
		out.AssetCode, out.AssetName, out.AssetType = a.AssetCode, a.Name, a.AssetType
	}
	for _, v := range f.s.vehicles {
		if v.AssetID == r.AssetID {
			out.LicensePlate = v.LicensePlate
		}
	}
	return out
}

func (f fakeReminders) List(_ context.Context, filter models.ReminderFilter) ([]models.ReminderWithAsset, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.ReminderWithAsset{}
	for _, r := range f.s.reminders {
		if !r.IsActive {
			continue
		}
		if filter.Type != "" && r.ReminderType != filter.Type {
			continue
		}
		if filter.Overdue && !r.NextDueDate.Before(filter.Today) {
			continue
		}
		list = append(list, f.withAsset(r))
	}
	sort.Slice(list, func(i, j int) bool {
		if filter.SortAsc {
			return list[i].NextDueDate.Before(list[j].NextDueDate)
		}
		return list[i].NextDueDate.After(list[j].NextDueDate)
	})
	return list, nil
}

func (f fakeReminders) DueBefore(_ context.Context, until time.Time) ([]models.ReminderWithAsset, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.ReminderWithAsset{}
	for _, r := range f.s.reminders {
		if r.IsActive && !r.NextDueDate.After(until) {
			list = append(list, f.withAsset(r))
		}
	}
	return list, nil
}

func (f fakeReminders) Create(_ context.Context, r *models.Reminder, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *r
	f.s.reminders[r.ID] = &cp
	return nil
}

func (f fakeReminders) MarkDone(_ context.Context, r *models.Reminder, previousDue time.Time, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.reminders[r.ID]
	if !ok || !stored.NextDueDate.Equal(previousDue) {
		return repositories.ErrStale
	}
	stored.LastDoneAt = r.LastDoneAt
	stored.NextDueDate = r.NextDueDate
	return nil
}

func (f fakeReminders) DeleteByAssetIDs(_ context.Context, assetIDs []string, _ pgx.Tx) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for id, r := range f.s.reminders {
		for _, assetID := range assetIDs {
			if r.AssetID == assetID {
				delete(f.s.reminders, id)
				n++
				break
			}
		}
	}
	return n, nil
}

func (f fakeReminders) CountOverdue(_ context.Context, today time.Time) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, r := range f.s.reminders {
		if r.IsActive && r.NextDueDate.Before(today) {
			n++
		}
	}
	return n, nil
}

func (f fakeReminders) CountUpcoming(_ context.Context, today, until time.Time) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, r := range f.s.reminders {
		if r.IsActive && !r.NextDueDate.Before(today) && !r.NextDueDate.After(until) {
			n++
		}
	}
	return n, nil
}

type fakeSpareparts struct{ s *store }

func (f fakeSpareparts) GetAll(_ context.Context) ([]models.Sparepart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.Sparepart{}
	for _, sp := range f.s.spareparts {
		list = append(list, *sp)
	}
	return list, nil
}

func (f fakeSpareparts) GetByID(_ context.Context, id string) (*models.Sparepart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sp, ok := f.s.spareparts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *sp
	return &cp, nil
}

func (f fakeSpareparts) Create(_ context.Context, sp *models.Sparepart) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.spareparts {
		if existing.Code == sp.Code {
			return repositories.ErrDuplicate
		}
	}
	cp := *sp
	f.s.spareparts[sp.ID] = &cp
	return nil
}

func (f fakeSpareparts) Update(_ context.Context, sp *models.Sparepart) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.spareparts[sp.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *sp
	f.s.spareparts[sp.ID] = &cp
	return nil
}

func (f fakeSpareparts) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.spareparts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.s.spareparts, id)
	return nil
}

func (f fakeSpareparts) AdjustStock(_ context.Context, id string, delta int, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sp, ok := f.s.spareparts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if sp.StockQuantity+delta < 0 {
		return repositories.ErrInsufficientStock
	}
	sp.StockQuantity += delta
	return nil
}

func (f fakeSpareparts) Usage(_ context.Context, start, end time.Time) ([]models.SparepartUsage, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	totals := map[string]int{}
	for id, m := range f.s.maintenances {
		if m.CreatedAt.Before(start) || m.CreatedAt.After(end) {
			continue
		}
		for _, it := range f.s.items[id] {
			totals[it.SparepartID] += it.Quantity
		}
	}
	list := []models.SparepartUsage{}
	for id, total := range totals {
		sp := f.s.spareparts[id]
		list = append(list, models.SparepartUsage{SparepartID: id, Name: sp.Name, Unit: sp.Unit, Price: sp.Price, TotalUsed: total})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TotalUsed > list[j].TotalUsed })
	return list, nil
}

func (f fakeSpareparts) Count(_ context.Context) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return len(f.s.spareparts), nil
}

type fakeMaintenances struct{ s *store }

func (f fakeMaintenances) GetByID(_ context.Context, id string) (*models.Maintenance, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.maintenances[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *m
	if a, ok := f.s.assets[m.AssetID]; ok {
		ac := *a
		cp.Asset = &ac
	}
	if m.DriverID != nil {
		if d, ok := f.s.drivers[*m.DriverID]; ok {
			dc := *d
			cp.Driver = &dc
		}
	}
	if u, ok := f.s.users[m.UserID]; ok {
		cp.Mechanic = u.Fullname
	}
	for _, it := range f.s.items[id] {
		if sp, ok := f.s.spareparts[it.SparepartID]; ok {
			it.Code, it.Name, it.Unit, it.Price = sp.Code, sp.Name, sp.Unit, sp.Price
		}
		cp.Spareparts = append(cp.Spareparts, it)
	}
	return &cp, nil
}

func (f fakeMaintenances) ListByUser(_ context.Context, filter models.MaintenanceFilter) ([]models.Maintenance, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var matched []models.Maintenance
	for _, m := range f.s.maintenances {
		if m.UserID != filter.UserID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Complaint+" "+m.RecordNumber), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, *m)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].RecordNumber > matched[j].RecordNumber })

	total := len(matched)
	if filter.Offset >= total {
		return []models.Maintenance{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (f fakeMaintenances) ListByAsset(_ context.Context, assetID string) ([]models.Maintenance, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.Maintenance{}
	for _, m := range f.s.maintenances {
		if m.AssetID == assetID {
			list = append(list, *m)
		}
	}
	return list, nil
}

func (f fakeMaintenances) Create(_ context.Context, m *models.Maintenance, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m.CreatedAt, m.UpdatedAt = time.Now(), time.Now()
	cp := *m
	f.s.maintenances[m.ID] = &cp
	return nil
}

func (f fakeMaintenances) Update(_ context.Context, m *models.Maintenance, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.maintenances[m.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *m
	f.s.maintenances[m.ID] = &cp
	return nil
}

func (f fakeMaintenances) Delete(_ context.Context, id string, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.maintenances[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.s.maintenances, id)
	delete(f.s.items, id)
	return nil
}

func (f fakeMaintenances) Spareparts(_ context.Context, maintenanceID string, _ pgx.Tx) ([]models.MaintenanceSparepart, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return append([]models.MaintenanceSparepart(nil), f.s.items[maintenanceID]...), nil
}

func (f fakeMaintenances) ReplaceSpareparts(_ context.Context, maintenanceID string, items []models.MaintenanceSparepart, _ pgx.Tx) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.items[maintenanceID] = append([]models.MaintenanceSparepart(nil), items...)
	return nil
}

func (f fakeMaintenances) CountCreatedBetween(_ context.Context, start, end time.Time) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, m := range f.s.maintenances {
		if !m.CreatedAt.Before(start) && !m.CreatedAt.After(end) {
			n++
		}
	}
	return n, nil
}

type fakeUsers struct{ s *store }

func (f fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == username && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f fakeUsers) Create(_ context.Context, u *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.users {
		if existing.Username == u.Username {
			return repositories.ErrDuplicate
		}
	}
	cp := *u
	f.s.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) Update(_ context.Context, u *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.users {
		if existing.ID != u.ID && existing.Username == u.Username {
			return repositories.ErrDuplicate
		}
	}
	cp := *u
	f.s.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) SoftDelete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok || u.DeletedAt != nil {
		return repositories.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	u.IsActive = false
	return nil
}

func (f fakeUsers) CountActive(_ context.Context) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, u := range f.s.users {
		if u.IsActive && u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

type fakeDrivers struct{ s *store }

func (f fakeDrivers) GetAll(_ context.Context) ([]models.Driver, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := []models.Driver{}
	for _, d := range f.s.drivers {
		list = append(list, *d)
	}
	return list, nil
}

func (f fakeDrivers) Create(_ context.Context, d *models.Driver) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d.CreatedAt = time.Now()
	cp := *d
	f.s.drivers[d.ID] = &cp
	return nil
}

// reminderTypes returns the stored reminders of assetID keyed by type.
func (s *store) reminderTypes(assetID string) map[string]models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]models.Reminder{}
	for _, r := range s.reminders {
		if r.AssetID == assetID {
			out[r.ReminderType] = *r
		}
	}
	return out
}
