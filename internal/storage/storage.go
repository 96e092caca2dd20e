package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/pgn"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	prefixGame     = "game/"
	prefixPosition = "pos/"
)

// ErrNotFound is returned for an unknown game ID.
var ErrNotFound = errors.New("game not found")

// Preferences stores shell settings between sessions.
type Preferences struct {
	Username   string    `json:"username"`
	Color      bool      `json:"color"`
	Figurine   bool      `json:"figurine"`
	LastGame   string    `json:"last_game"`
	LastPlayed time.Time `json:"last_played"`
}

// DefaultPreferences returns default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Username:   "Player",
		Color:      true,
		LastPlayed: time.Now(),
	}
}

// GameStats aggregates the results of finished games.
type GameStats struct {
	GamesPlayed int            `json:"games_played"`
	WhiteWins   int            `json:"white_wins"`
	BlackWins   int            `json:"black_wins"`
	Draws       int            `json:"draws"`
	ByStatus    map[string]int `json:"by_status"`
	TotalPlies  int            `json:"total_plies"`
	LongestGame int            `json:"longest_game"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		ByStatus: make(map[string]int),
	}
}

// GameResult describes a finished game for the statistics.
type GameResult struct {
	Result game.Result
	Status game.Status
	Plies  int
}

// GameRecord is an archived game. PGN is the authoritative move list; the
// other fields are denormalised for listing.
type GameRecord struct {
	ID        string    `json:"id"`
	White     string    `json:"white"`
	Black     string    `json:"black"`
	Event     string    `json:"event"`
	Result    string    `json:"result"`
	Status    string    `json:"status"`
	FEN       string    `json:"fen,omitempty"`
	Plies     int       `json:"plies"`
	PGN       string    `json:"pgn"`
	Positions []string  `json:"positions"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db     *badger.DB
	logger *zap.Logger
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger routes storage and badger logging to l.
func WithLogger(l *zap.Logger) Option {
	return func(s *Storage) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStorage opens the archive in the platform data directory.
func NewStorage(opts ...Option) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir, opts...)
}

// Open opens or creates the archive in dir.
func Open(dir string, opts ...Option) (*Storage, error) {
	return open(badger.DefaultOptions(dir), opts)
}

// OpenInMemory opens an archive that lives only as long as the process.
func OpenInMemory(opts ...Option) (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), opts)
}

func open(bopts badger.Options, opts []Option) (*Storage, error) {
	s := &Storage{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	bopts.Logger = badgerLogger{s.logger.Named("badger").Sugar()}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.db = db
	s.logger.Debug("storage opened", zap.String("dir", bopts.Dir), zap.Bool("in_memory", bopts.InMemory))
	return s, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// badgerLogger adapts zap to badger's logger interface, demoting badger's
// info messages to debug.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Debugf(format, args...)
}

func gameKey(id string) []byte {
	return []byte(prefixGame + id)
}

func positionPrefix(hash uint64) string {
	return prefixPosition + strconv.FormatUint(hash, 16) + "/"
}

// SaveGame archives g and returns its ID. An empty id creates a new record;
// an existing id is overwritten. tags are added to the PGN export. A game
// that becomes finished by this save is counted in the statistics.
func (s *Storage) SaveGame(id string, g *game.Game, tags map[string]string) (string, error) {
	now := time.Now()
	var prev *GameRecord
	if id == "" {
		id = uuid.NewString()
	} else {
		rec, err := s.LoadGame(id)
		switch {
		case err == nil:
			prev = rec
		case !errors.Is(err, ErrNotFound):
			return "", err
		}
	}

	p := pgn.FromGame(g, tags)
	rec := &GameRecord{
		ID:      id,
		White:   p.Tag("White"),
		Black:   p.Tag("Black"),
		Event:   p.Tag("Event"),
		Result:  g.Result().String(),
		Status:  g.Status().String(),
		FEN:     p.Tag("FEN"),
		Plies:   g.Size(),
		PGN:     p.String(),
		Created: now,
		Updated: now,
	}
	if prev != nil {
		rec.Created = prev.Created
	}

	seen := make(map[uint64]bool)
	index := func(_ int, pos *board.Position, _ game.MoveRecord) bool {
		h := pos.Hash()
		if !seen[h] {
			seen[h] = true
			rec.Positions = append(rec.Positions, strconv.FormatUint(h, 16))
		}
		return true
	}
	index(0, g.Position(0), game.MoveRecord{})
	g.Each(index)

	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if prev != nil {
			for _, h := range prev.Positions {
				if err := txn.Delete([]byte(prefixPosition + h + "/" + id)); err != nil {
					return err
				}
			}
		}
		for _, h := range rec.Positions {
			if err := txn.Set([]byte(prefixPosition+h+"/"+id), nil); err != nil {
				return err
			}
		}
		return txn.Set(gameKey(id), data)
	})
	if err != nil {
		return "", fmt.Errorf("save game %s: %w", id, err)
	}
	s.logger.Info("game saved", zap.String("id", id), zap.String("result", rec.Result), zap.Int("plies", rec.Plies))

	if g.Over() && (prev == nil || prev.Result == game.InProgress.String()) {
		err := s.RecordGame(GameResult{Result: g.Result(), Status: g.Status(), Plies: g.Size()})
		if err != nil {
			return id, err
		}
	}
	return id, nil
}

// LoadGame returns the archived record for id.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RestoreGame replays an archived game.
func (s *Storage) RestoreGame(id string, opts ...game.Option) (*game.Game, error) {
	rec, err := s.LoadGame(id)
	if err != nil {
		return nil, err
	}
	p, err := pgn.ParseString(rec.PGN)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}
	return p.Replay(opts...)
}

// DeleteGame removes a game and its position index entries.
func (s *Storage) DeleteGame(id string) error {
	rec, err := s.LoadGame(id)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for _, h := range rec.Positions {
			if err := txn.Delete([]byte(prefixPosition + h + "/" + id)); err != nil {
				return err
			}
		}
		return txn.Delete(gameKey(id))
	})
}

// ListGames returns every archived game, most recently updated first.
func (s *Storage) ListGames() ([]GameRecord, error) {
	var games []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Updated.After(games[j].Updated)
	})
	return games, nil
}

// GamesWithPosition returns the IDs of archived games that passed through
// pos. Move counters are ignored.
func (s *Storage) GamesWithPosition(pos *board.Position) ([]string, error) {
	prefix := positionPrefix(pos.Hash())
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return ids, err
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if stats.ByStatus == nil {
		stats.ByStatus = make(map[string]int)
	}

	return stats, err
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlies += result.Plies
	if result.Plies > stats.LongestGame {
		stats.LongestGame = result.Plies
	}
	stats.ByStatus[result.Status.String()]++

	switch result.Result {
	case game.WhiteWon:
		stats.WhiteWins++
	case game.BlackWon:
		stats.BlackWins++
	case game.Draw:
		stats.Draws++
	}

	return s.SaveStats(stats)
}

// WhiteScore returns White's score as a percentage (0-100), draws counting
// half a point.
func (s *GameStats) WhiteScore() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return (float64(s.WhiteWins) + float64(s.Draws)/2) / float64(s.GamesPlayed) * 100
}

// AveragePlies returns the mean game length in plies.
func (s *GameStats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}
