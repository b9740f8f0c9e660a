package vocation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stormvale/vocation-engine/internal/domain"
	"github.com/stormvale/vocation-engine/internal/inventory"
	"github.com/stormvale/vocation-engine/internal/repository"
)

// fakeStore is an in-memory stand-in for the activity and inventory tables.
// Transactions take a store-wide lock, which models the row lock closely
// enough for these tests: two claims for the same player serialize.
type fakeStore struct {
	txMu sync.Mutex

	mu          sync.Mutex
	activities  map[string]*domain.Activity
	inventories map[string]*domain.Inventory
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		activities:  make(map[string]*domain.Activity),
		inventories: make(map[string]*domain.Inventory),
	}
}

func (f *fakeStore) setInventory(playerID string, inv *domain.Inventory) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inventories[playerID] = inv
}

func (f *fakeStore) inventorySnapshot(playerID string) *domain.Inventory {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inv, ok := f.inventories[playerID]; ok {
		return inventory.Clone(inv)
	}
	return &domain.Inventory{}
}

func (f *fakeStore) activitySnapshot(playerID string) *domain.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	if act, ok := f.activities[playerID]; ok {
		cp := *act
		return &cp
	}
	return nil
}

func (f *fakeStore) GetActivity(_ context.Context, playerID string) (*domain.Activity, error) {
	act := f.activitySnapshot(playerID)
	if act == nil {
		return nil, domain.ErrActivityNotFound
	}
	return act, nil
}

func (f *fakeStore) ListRunning(_ context.Context, now time.Time) ([]domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Activity
	for _, act := range f.activities {
		if act.EndsAt.After(now) || Progress(act, now).UnitsClaimable > 0 {
			out = append(out, *act)
		}
	}
	return out, nil
}

func (f *fakeStore) BeginTx(_ context.Context) (repository.ActivityTx, error) {
	f.txMu.Lock()
	return &fakeTx{
		store:             f,
		pendingActivities: make(map[string]*domain.Activity),
		pendingInventory:  make(map[string]*domain.Inventory),
		deleted:           make(map[string]bool),
	}, nil
}

// fakeTx stages mutations and applies them on Commit. Rollback after the
// transaction is closed returns the driver's closed-tx error text so
// SafeRollback stays quiet.
type fakeTx struct {
	store  *fakeStore
	closed bool

	pendingActivities map[string]*domain.Activity
	pendingInventory  map[string]*domain.Inventory
	deleted           map[string]bool
}

func (t *fakeTx) GetActivityForUpdate(_ context.Context, playerID string) (*domain.Activity, error) {
	if t.deleted[playerID] {
		return nil, domain.ErrActivityNotFound
	}
	if act, ok := t.pendingActivities[playerID]; ok {
		cp := *act
		return &cp, nil
	}
	act := t.store.activitySnapshot(playerID)
	if act == nil {
		return nil, domain.ErrActivityNotFound
	}
	return act, nil
}

func (t *fakeTx) CreateActivity(_ context.Context, activity *domain.Activity) error {
	cp := *activity
	t.pendingActivities[activity.PlayerID] = &cp
	delete(t.deleted, activity.PlayerID)
	return nil
}

func (t *fakeTx) UpdateUnitsClaimed(_ context.Context, playerID string, unitsClaimed int) error {
	act, err := t.GetActivityForUpdate(context.Background(), playerID)
	if err != nil {
		return err
	}
	act.UnitsClaimed = unitsClaimed
	t.pendingActivities[playerID] = act
	return nil
}

func (t *fakeTx) DeleteActivity(_ context.Context, playerID string) error {
	delete(t.pendingActivities, playerID)
	t.deleted[playerID] = true
	return nil
}

func (t *fakeTx) GetInventory(_ context.Context, playerID string) (*domain.Inventory, error) {
	if inv, ok := t.pendingInventory[playerID]; ok {
		return inventory.Clone(inv), nil
	}
	return t.store.inventorySnapshot(playerID), nil
}

func (t *fakeTx) UpdateInventory(_ context.Context, playerID string, inv domain.Inventory) error {
	t.pendingInventory[playerID] = inventory.Clone(&inv)
	return nil
}

func (t *fakeTx) Commit(_ context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.store.mu.Lock()
	for playerID := range t.deleted {
		delete(t.store.activities, playerID)
	}
	for playerID, act := range t.pendingActivities {
		t.store.activities[playerID] = act
	}
	for playerID, inv := range t.pendingInventory {
		t.store.inventories[playerID] = inv
	}
	t.store.mu.Unlock()
	t.closed = true
	t.store.txMu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	t.store.txMu.Unlock()
	return nil
}

// fakeCatalog serves resource and item templates from maps.
type fakeCatalog struct {
	resources map[int]*domain.VocationalResource
	items     map[int]*domain.Item

	// nil means every location is open; otherwise explicit allow-list
	locations map[int]map[int]bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		resources: make(map[int]*domain.VocationalResource),
		items:     make(map[int]*domain.Item),
	}
}

func (f *fakeCatalog) GetResource(_ context.Context, resourceID int) (*domain.VocationalResource, error) {
	res, ok := f.resources[resourceID]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	return res, nil
}

func (f *fakeCatalog) ListResources(_ context.Context) ([]domain.VocationalResource, error) {
	var out []domain.VocationalResource
	for _, res := range f.resources {
		out = append(out, *res)
	}
	return out, nil
}

func (f *fakeCatalog) ResourceAvailableAt(_ context.Context, resourceID, locationID int) (bool, error) {
	if f.locations == nil {
		return true, nil
	}
	return f.locations[resourceID][locationID], nil
}

func (f *fakeCatalog) GetItemByID(_ context.Context, itemID int) (*domain.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeCatalog) GetItemsByIDs(_ context.Context, itemIDs []int) ([]domain.Item, error) {
	var out []domain.Item
	for _, id := range itemIDs {
		if item, ok := f.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

// fakeEquipment returns preconfigured tools per player and action.
type fakeEquipment struct {
	tools map[string]map[domain.ActionType]*domain.EquippedTool
}

func newFakeEquipment() *fakeEquipment {
	return &fakeEquipment{tools: make(map[string]map[domain.ActionType]*domain.EquippedTool)}
}

func (f *fakeEquipment) equip(playerID string, action domain.ActionType, tool *domain.EquippedTool) {
	if f.tools[playerID] == nil {
		f.tools[playerID] = make(map[domain.ActionType]*domain.EquippedTool)
	}
	f.tools[playerID][action] = tool
}

func (f *fakeEquipment) GetEquippedTool(_ context.Context, playerID string, action domain.ActionType) (*domain.EquippedTool, error) {
	return f.tools[playerID][action], nil
}

// fakeSkillRepo is an in-memory XP ledger.
type fakeSkillRepo struct {
	mu       sync.Mutex
	trackXP  map[string]int64
	playerXP map[string]int64
	failAdds bool
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{
		trackXP:  make(map[string]int64),
		playerXP: make(map[string]int64),
	}
}

func (f *fakeSkillRepo) key(playerID, trackKey string) string { return playerID + "/" + trackKey }

func (f *fakeSkillRepo) GetTrackXP(_ context.Context, playerID, trackKey string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trackXP[f.key(playerID, trackKey)], nil
}

func (f *fakeSkillRepo) AddTrackXP(_ context.Context, playerID, trackKey string, amount int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdds {
		return 0, errors.New("ledger unavailable")
	}
	f.trackXP[f.key(playerID, trackKey)] += amount
	return f.trackXP[f.key(playerID, trackKey)], nil
}

func (f *fakeSkillRepo) AddPlayerXP(_ context.Context, playerID string, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playerXP[playerID] += amount
	return nil
}
