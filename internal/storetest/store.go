// Package storetest provides an in-memory repositories.Store for service
// tests. ExecuteInTransaction snapshots state and restores it when fn fails,
// mirroring the rollback behavior services rely on.
package storetest

import (
	"sort"
	"sync"

	"cardbank/internal/models"
	"cardbank/internal/repositories"
)

type Store struct {
	mu sync.Mutex

	cards         map[uint]models.Card
	limits        map[uint]models.CardLimit
	transactions  []models.Transaction
	blockRequests []models.BlockRequest

	nextCardID  uint
	nextLimitID uint
	nextTxID    uint
}

func New() *Store {
	return &Store{
		cards:       make(map[uint]models.Card),
		limits:      make(map[uint]models.CardLimit),
		nextCardID:  1,
		nextLimitID: 1,
		nextTxID:    1,
	}
}

var _ repositories.Store = (*Store)(nil)

// SeedCard inserts a card and returns its assigned ID.
func (s *Store) SeedCard(card models.Card) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if card.ID == 0 {
		card.ID = s.nextCardID
		s.nextCardID++
	} else if card.ID >= s.nextCardID {
		s.nextCardID = card.ID + 1
	}
	s.cards[card.ID] = card
	return card.ID
}

// SeedLimit inserts a limit and returns its assigned ID.
func (s *Store) SeedLimit(limit models.CardLimit) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit.ID == 0 {
		limit.ID = s.nextLimitID
		s.nextLimitID++
	} else if limit.ID >= s.nextLimitID {
		s.nextLimitID = limit.ID + 1
	}
	s.limits[limit.ID] = limit
	return limit.ID
}

// TransactionCount reports the number of appended transactions.
func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

func (s *Store) Create(card *models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	card.ID = s.nextCardID
	s.nextCardID++
	s.cards[card.ID] = *card
	return nil
}

func (s *Store) GetByID(id uint) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, repositories.ErrCardNotFound
	}
	return &card, nil
}

func (s *Store) GetByIDForUpdate(id uint) (*models.Card, error) {
	return s.GetByID(id)
}

func (s *Store) GetAll() ([]models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Card, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetAllByOwner(userID uint) ([]models.Card, error) {
	all, _ := s.GetAll()
	out := make([]models.Card, 0)
	for _, c := range all {
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) Update(card *models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[card.ID]; !ok {
		return repositories.ErrCardNotFound
	}
	s.cards[card.ID] = *card
	return nil
}

func (s *Store) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[id]; !ok {
		return repositories.ErrCardNotFound
	}
	delete(s.cards, id)
	for lid, l := range s.limits {
		if l.CardID == id {
			delete(s.limits, lid)
		}
	}
	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if t.CardID != id {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
	return nil
}

func (s *Store) CreateBlockRequest(req *models.BlockRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req.ID = uint(len(s.blockRequests) + 1)
	s.blockRequests = append(s.blockRequests, *req)
	return nil
}

func (s *Store) GetBlockRequests() ([]models.BlockRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.BlockRequest(nil), s.blockRequests...), nil
}

func (s *Store) GetLimitsByCard(cardID uint) ([]models.CardLimit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CardLimit, 0)
	for _, l := range s.limits {
		if l.CardID == cardID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetLimitByCardAndKind(cardID uint, kind models.LimitKind) (*models.CardLimit, error) {
	limits, _ := s.GetLimitsByCard(cardID)
	for _, l := range limits {
		if l.Kind == kind {
			l := l
			return &l, nil
		}
	}
	return nil, repositories.ErrLimitNotFound
}

// Limit returns the stored limit row by ID.
func (s *Store) Limit(id uint) (models.CardLimit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limits[id]
	return l, ok
}

func (s *Store) SaveLimit(limit *models.CardLimit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit.ID == 0 {
		limit.ID = s.nextLimitID
		s.nextLimitID++
	}
	s.limits[limit.ID] = *limit
	return nil
}

func (s *Store) AppendTransaction(tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = s.nextTxID
	s.nextTxID++
	s.transactions = append(s.transactions, *tx)
	return nil
}

func (s *Store) GetTransactionsByCard(cardID uint) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, 0)
	for _, t := range s.transactions {
		if t.CardID == cardID {
			out = append(out, t)
		}
	}
	return out, nil
}

// ExecuteInTransaction runs fn against the store and restores the previous
// state if fn returns an error.
func (s *Store) ExecuteInTransaction(fn func(repositories.Store) error) error {
	snapshot := s.clone()
	if err := fn(s); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *Store) clone() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &Store{
		cards:         make(map[uint]models.Card, len(s.cards)),
		limits:        make(map[uint]models.CardLimit, len(s.limits)),
		transactions:  append([]models.Transaction(nil), s.transactions...),
		blockRequests: append([]models.BlockRequest(nil), s.blockRequests...),
		nextCardID:    s.nextCardID,
		nextLimitID:   s.nextLimitID,
		nextTxID:      s.nextTxID,
	}
	for id, card := range s.cards {
		c.cards[id] = card
	}
	for id, l := range s.limits {
		c.limits[id] = l
	}
	return c
}

func (s *Store) restore(from *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = from.cards
	s.limits = from.limits
	s.transactions = from.transactions
	s.blockRequests = from.blockRequests
	s.nextCardID = from.nextCardID
	s.nextLimitID = from.nextLimitID
	s.nextTxID = from.nextTxID
}
