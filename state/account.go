// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/openethcore/acctstate/cache"
	"github.com/openethcore/acctstate/hashdb"
	"github.com/openethcore/acctstate/ledger"
	"github.com/openethcore/acctstate/log"
	"github.com/openethcore/acctstate/pod"
	"github.com/openethcore/acctstate/trie"
)

var logger = log.WithContext("pkg", "state")

// StorageCacheItems is the capacity of the per-account storage read cache.
const StorageCacheItems = 4096

// Account is the state record of one account.
// The zero value is not usable, use one of the constructors.
type Account struct {
	balance     uint256.Int
	nonce       uint256.Int
	storageRoot ledger.Bytes32

	// recent trie reads; refilled by logically read-only calls
	storageCache *cache.LRU[ledger.Bytes32, ledger.Bytes32]
	// uncommitted writes, always shadowing storageCache
	storageChanges map[ledger.Bytes32]ledger.Bytes32

	codeHash      *ledger.Bytes32 // nil until code is attached and committed
	code          []byte
	codeKnown     bool
	codeSize      int
	codeSizeKnown bool

	dirty       bool
	addressHash *ledger.Bytes32
}

// accountRLP is the canonical encoding, stored as the account trie leaf.
type accountRLP struct {
	Nonce       *uint256.Int
	Balance     *uint256.Int
	StorageRoot ledger.Bytes32
	CodeHash    ledger.Bytes32
}

func newStorageCache() *cache.LRU[ledger.Bytes32, ledger.Bytes32] {
	return cache.MustNewLRU[ledger.Bytes32, ledger.Bytes32](StorageCacheItems)
}

// NewAccount creates a dirty account from explicit fields. storage becomes the
// pending overlay and code the attached code.
func NewAccount(balance, nonce *uint256.Int, storage map[ledger.Bytes32]ledger.Bytes32, code []byte) *Account {
	hash := ledger.Keccak256(code)
	changes := maps.Clone(storage)
	if changes == nil {
		changes = make(map[ledger.Bytes32]ledger.Bytes32)
	}
	return &Account{
		balance:        *balance,
		nonce:          *nonce,
		storageRoot:    ledger.EmptyRoot,
		storageCache:   newStorageCache(),
		storageChanges: changes,
		codeHash:       &hash,
		code:           bytes.Clone(code),
		codeKnown:      true,
		codeSize:       len(code),
		codeSizeKnown:  true,
		dirty:          true,
	}
}

// NewBasic creates a dirty account with no code.
func NewBasic(balance, nonce *uint256.Int) *Account {
	hash := ledger.EmptyCodeHash
	return &Account{
		balance:        *balance,
		nonce:          *nonce,
		storageRoot:    ledger.EmptyRoot,
		storageCache:   newStorageCache(),
		storageChanges: make(map[ledger.Bytes32]ledger.Bytes32),
		codeHash:       &hash,
		codeKnown:      true,
		codeSizeKnown:  true,
		dirty:          true,
	}
}

// NewContract creates a dirty contract placeholder. Its code is attached
// later with InitCode.
func NewContract(balance, nonce *uint256.Int) *Account {
	return &Account{
		balance:        *balance,
		nonce:          *nonce,
		storageRoot:    ledger.EmptyRoot,
		storageCache:   newStorageCache(),
		storageChanges: make(map[ledger.Bytes32]ledger.Bytes32),
		codeKnown:      true,
		dirty:          true,
	}
}

// FromPod creates a dirty account from its plain-data form. The storage
// becomes the pending overlay. Unknown code is assumed to be empty.
func FromPod(p pod.Account) *Account {
	acc := &Account{
		storageRoot:    ledger.EmptyRoot,
		storageCache:   newStorageCache(),
		storageChanges: make(map[ledger.Bytes32]ledger.Bytes32, len(p.Storage)),
		codeKnown:      true,
		codeSizeKnown:  true,
		dirty:          true,
	}
	if p.Balance != nil {
		acc.balance = *p.Balance
	}
	if p.Nonce != nil {
		acc.nonce = *p.Nonce
	}
	maps.Copy(acc.storageChanges, p.Storage)
	if p.Code != nil {
		hash := ledger.Keccak256(*p.Code)
		acc.codeHash = &hash
		acc.code = bytes.Clone(*p.Code)
		acc.codeSize = len(acc.code)
	} else {
		logger.Warn("pod account with unknown code is being created, assuming no code")
	}
	return acc
}

// FromBytes decodes a clean account from its canonical encoding.
// Storage cache and overlay start empty. Code is not loaded, except when the
// code hash is the empty code hash: then code is known empty and the code size
// is known to be 0, rather than left unknown.
func FromBytes(data []byte) (*Account, error) {
	var dec accountRLP
	if err := rlp.DecodeBytes(data, &dec); err != nil {
		return nil, errors.Wrap(err, "decode account")
	}
	acc := &Account{
		balance:        *dec.Balance,
		nonce:          *dec.Nonce,
		storageRoot:    dec.StorageRoot,
		storageCache:   newStorageCache(),
		storageChanges: make(map[ledger.Bytes32]ledger.Bytes32),
		codeHash:       &dec.CodeHash,
	}
	if dec.CodeHash == ledger.EmptyCodeHash {
		acc.codeKnown = true
		acc.codeSizeKnown = true
	}
	return acc, nil
}

// Bytes returns the canonical encoding: nonce, balance, storage root, code hash.
func (a *Account) Bytes() []byte {
	data, err := rlp.EncodeToBytes(&accountRLP{
		Nonce:       &a.nonce,
		Balance:     &a.balance,
		StorageRoot: a.storageRoot,
		CodeHash:    a.CodeHash(),
	})
	if err != nil {
		panic(err) // fixed layout, cannot fail
	}
	return data
}

// InitCode attaches code to an account whose code identity is not set yet.
func (a *Account) InitCode(code []byte) error {
	if a.codeHash != nil {
		return invariant("InitCode", "code hash already set to %v", *a.codeHash)
	}
	a.code = bytes.Clone(code)
	a.codeKnown = true
	a.codeSize = len(code)
	a.codeSizeKnown = true
	a.dirty = true
	return nil
}

// ResetCode clears the code identity and attaches code.
func (a *Account) ResetCode(code []byte) error {
	a.codeHash = nil
	a.codeSize = 0
	return a.InitCode(code)
}

// NoteCode attaches code loaded elsewhere if it matches the code hash.
func (a *Account) NoteCode(code []byte) error {
	h := ledger.Keccak256(code)
	if a.codeHash == nil || *a.codeHash != h {
		return errors.Errorf("code hash mismatch: got %v", h)
	}
	a.code = bytes.Clone(code)
	a.codeKnown = true
	a.codeSize = len(code)
	a.codeSizeKnown = true
	return nil
}

// IncNonce increments the nonce by one.
func (a *Account) IncNonce() {
	a.nonce.AddUint64(&a.nonce, 1)
	a.dirty = true
}

// AddBalance adds x to the balance. Adding zero is a no-op.
func (a *Account) AddBalance(x *uint256.Int) error {
	if x.IsZero() {
		return nil
	}
	var sum uint256.Int
	if _, overflow := sum.AddOverflow(&a.balance, x); overflow {
		return invariant("AddBalance", "balance %v + %v overflows", &a.balance, x)
	}
	a.balance = sum
	a.dirty = true
	return nil
}

// SubBalance subtracts x from the balance. Subtracting zero is a no-op.
// The caller must have checked the balance is sufficient.
func (a *Account) SubBalance(x *uint256.Int) error {
	if x.IsZero() {
		return nil
	}
	if a.balance.Lt(x) {
		return invariant("SubBalance", "insufficient balance %v to subtract %v", &a.balance, x)
	}
	a.balance.Sub(&a.balance, x)
	a.dirty = true
	return nil
}

// SetStorage records a pending storage write. Writing the value already
// pending for key is a no-op.
func (a *Account) SetStorage(key, value ledger.Bytes32) {
	if v, ok := a.storageChanges[key]; ok && v == value {
		return
	}
	a.storageChanges[key] = value
	a.dirty = true
}

// CachedStorageAt returns the value of key from the overlay or the cache,
// without touching the trie.
func (a *Account) CachedStorageAt(key ledger.Bytes32) (ledger.Bytes32, bool) {
	if v, ok := a.storageChanges[key]; ok {
		return v, true
	}
	return a.storageCache.Get(key)
}

// StorageAt returns the value of key, reading the storage trie on cache miss.
// Absent keys read as zero. It panics if the store fails to serve a node of
// the committed storage trie.
func (a *Account) StorageAt(db hashdb.Getter, key ledger.Bytes32) ledger.Bytes32 {
	if v, ok := a.storageChanges[key]; ok {
		return v
	}
	event := "hit"
	v, _ := a.storageCache.GetOrLoad(key, func(key ledger.Bytes32) (ledger.Bytes32, error) {
		event = "miss"
		return a.loadStorage(db, key), nil
	})
	metricCacheCounter().AddWithLabel(1, map[string]string{"type": "storage", "event": event})
	return v
}

func (a *Account) loadStorage(db hashdb.Getter, key ledger.Bytes32) ledger.Bytes32 {
	t, err := trie.NewSecure(a.storageRoot, db)
	if err != nil {
		panic(fmt.Sprintf("open storage trie %v: potential db corruption: %v", a.storageRoot, err))
	}
	enc, err := t.Get(key[:])
	if err != nil {
		panic(fmt.Sprintf("read storage %v: potential db corruption: %v", key, err))
	}
	if len(enc) == 0 {
		return ledger.Bytes32{}
	}
	var v uint256.Int
	if err := rlp.DecodeBytes(enc, &v); err != nil {
		panic(fmt.Sprintf("decode storage %v: potential db corruption: %v", key, err))
	}
	return ledger.Uint256ToBytes32(&v)
}

// Balance returns a copy of the balance.
func (a *Account) Balance() *uint256.Int { return new(uint256.Int).Set(&a.balance) }

// Nonce returns a copy of the nonce.
func (a *Account) Nonce() *uint256.Int { return new(uint256.Int).Set(&a.nonce) }

// CodeHash returns the code hash, or the empty code hash if code identity is not set.
func (a *Account) CodeHash() ledger.Bytes32 {
	if a.codeHash == nil {
		return ledger.EmptyCodeHash
	}
	return *a.codeHash
}

// AddressHash returns the hash of addr, computed once per record.
func (a *Account) AddressHash(addr ledger.Address) ledger.Bytes32 {
	if a.addressHash == nil {
		h := addr.Hash()
		a.addressHash = &h
	}
	return *a.addressHash
}

// Code returns the code and whether it is loaded.
// The returned slice may be shared with the code cache and must not be modified.
func (a *Account) Code() ([]byte, bool) {
	if !a.codeKnown {
		return nil, false
	}
	return a.code, true
}

// CodeSize returns the code size and whether it is known. A decoded account
// with the empty code hash reports a known size of 0.
func (a *Account) CodeSize() (int, bool) {
	return a.codeSize, a.codeSizeKnown
}

// IsCached returns whether the code is loaded.
func (a *Account) IsCached() bool { return a.codeKnown }

// StorageIsClean returns whether there are no pending storage writes.
func (a *Account) StorageIsClean() bool { return len(a.storageChanges) == 0 }

// IsDirty returns whether the record has changes not yet committed.
func (a *Account) IsDirty() bool { return a.dirty || !a.StorageIsClean() }

// StorageRoot returns the storage root. It's only valid when there are no
// pending storage writes.
func (a *Account) StorageRoot() (ledger.Bytes32, bool) {
	if !a.StorageIsClean() {
		return ledger.Bytes32{}, false
	}
	return a.storageRoot, true
}

// StorageChanges returns a copy of the pending storage writes.
func (a *Account) StorageChanges() map[ledger.Bytes32]ledger.Bytes32 {
	return maps.Clone(a.storageChanges)
}

// SetClean marks the record as committed.
func (a *Account) SetClean() error {
	if !a.StorageIsClean() {
		return invariant("SetClean", "%d pending storage writes", len(a.storageChanges))
	}
	a.dirty = false
	return nil
}

// CacheCode loads the code from db unless it's already loaded.
// It returns whether the code is available afterwards.
func (a *Account) CacheCode(db hashdb.Getter) bool {
	if a.codeKnown {
		return true
	}
	if a.codeHash == nil {
		return false
	}
	code, err := loadCode(db, *a.codeHash)
	if err != nil {
		logger.Warn("failed reverse get of code", "hash", *a.codeHash, "err", err)
		return false
	}
	a.code = code
	a.codeKnown = true
	a.codeSize = len(code)
	a.codeSizeKnown = true
	return true
}

// CacheCodeSize loads the code size from db unless it's already known.
// It returns whether the size is available afterwards.
func (a *Account) CacheCodeSize(db hashdb.Getter) bool {
	if a.codeSizeKnown {
		return true
	}
	if a.codeHash == nil || *a.codeHash == ledger.EmptyCodeHash {
		return false
	}
	code, err := loadCode(db, *a.codeHash)
	if err != nil {
		logger.Warn("failed reverse get of code", "hash", *a.codeHash, "err", err)
		return false
	}
	a.codeSize = len(code)
	a.codeSizeKnown = true
	return true
}

// CommitStorage writes the pending storage changes into the storage trie.
// Zero values remove their key. Written entries move into the cache.
//
// A key that fails to apply is logged and stays pending while the rest are
// committed. The failed keys are reported in a *PartialCommitError.
func (a *Account) CommitStorage(factory trie.Factory, db hashdb.HashDB) error {
	if len(a.storageChanges) == 0 {
		return nil
	}
	metricCommitKeys().Observe(int64(len(a.storageChanges)))
	t, err := factory.Open(db, a.storageRoot)
	if err != nil {
		panic(fmt.Sprintf("open storage trie %v: potential db corruption: %v", a.storageRoot, err))
	}

	var (
		applied = make([]ledger.Bytes32, 0, len(a.storageChanges))
		failed  []ledger.Bytes32
		first   error
	)
	for _, k := range sortedKeys(a.storageChanges) {
		v := a.storageChanges[k]
		var err error
		if v.IsZero() {
			err = t.Remove(k[:])
		} else {
			enc, _ := rlp.EncodeToBytes(v.Uint256())
			err = t.Insert(k[:], enc)
		}
		if err != nil {
			logger.Warn("failed to commit storage", "key", k, "err", err)
			failed = append(failed, k)
			if first == nil {
				first = err
			}
			continue
		}
		applied = append(applied, k)
	}

	root, err := t.Commit()
	if err != nil {
		metricCommitCounter().AddWithLabel(1, map[string]string{"type": "storage", "result": "failed"})
		return &PartialCommitError{Keys: sortedKeys(a.storageChanges), Err: errors.Wrap(err, "commit storage trie")}
	}
	a.storageRoot = root
	for _, k := range applied {
		a.storageCache.Add(k, a.storageChanges[k])
		delete(a.storageChanges, k)
	}

	if len(failed) > 0 {
		metricCommitCounter().AddWithLabel(1, map[string]string{"type": "storage", "result": "partial"})
		return &PartialCommitError{Keys: failed, Err: first}
	}
	metricCommitCounter().AddWithLabel(1, map[string]string{"type": "storage", "result": "ok"})
	return nil
}

// CommitCode assigns the code hash, inserting the code into db if needed.
// It's a no-op once the code hash is set.
func (a *Account) CommitCode(db hashdb.HashDB) error {
	if a.codeHash != nil {
		return nil
	}
	if !a.codeKnown {
		return invariant("CommitCode", "code of unidentified account is not loaded")
	}
	if len(a.code) == 0 {
		hash := ledger.EmptyCodeHash
		a.codeHash = &hash
	} else {
		hash, err := db.Insert(a.code)
		if err != nil {
			metricCommitCounter().AddWithLabel(1, map[string]string{"type": "code", "result": "failed"})
			return errors.Wrap(err, "insert code")
		}
		a.codeHash = &hash
		codeCache.Add(hash, a.code)
	}
	a.codeSize = len(a.code)
	a.codeSizeKnown = true
	metricCommitCounter().AddWithLabel(1, map[string]string{"type": "code", "result": "ok"})
	return nil
}

// CloneLevel controls how much of a record Clone copies.
type CloneLevel int

const (
	// CloneBasic copies balance, nonce, storage root, code identity and
	// address hash. Cache and overlay start empty.
	CloneBasic CloneLevel = iota
	// CloneDirty also copies the overlay and the loaded code.
	CloneDirty
	// CloneAll also copies the storage cache.
	CloneAll
)

// Clone copies the record at the given level. The copy shares no mutable
// state with a.
func (a *Account) Clone(level CloneLevel) *Account {
	cpy := &Account{
		balance:        a.balance,
		nonce:          a.nonce,
		storageRoot:    a.storageRoot,
		storageCache:   newStorageCache(),
		storageChanges: make(map[ledger.Bytes32]ledger.Bytes32),
		codeSize:       a.codeSize,
		codeSizeKnown:  a.codeSizeKnown,
		dirty:          a.dirty,
	}
	if a.codeHash != nil {
		h := *a.codeHash
		cpy.codeHash = &h
	}
	if a.addressHash != nil {
		h := *a.addressHash
		cpy.addressHash = &h
	}
	// without code bytes, code is known only when trivially empty
	switch {
	case a.codeHash == nil:
		cpy.codeKnown = a.codeKnown && len(a.code) == 0
	default:
		cpy.codeKnown = *a.codeHash == ledger.EmptyCodeHash
	}

	if level >= CloneDirty {
		maps.Copy(cpy.storageChanges, a.storageChanges)
		if a.codeKnown {
			cpy.code = slices.Clone(a.code)
			cpy.codeKnown = true
		}
	}
	if level >= CloneAll {
		cpy.storageCache = a.storageCache.Clone()
	}
	return cpy
}

// MergeWith replaces the durable fields of a with those of other and adds
// other's cached storage into a's cache. Both must have no pending storage
// writes. other must not be used afterwards.
func (a *Account) MergeWith(other *Account) error {
	if !a.StorageIsClean() {
		return invariant("MergeWith", "%d pending storage writes", len(a.storageChanges))
	}
	if !other.StorageIsClean() {
		return invariant("MergeWith", "other has %d pending storage writes", len(other.storageChanges))
	}
	a.balance = other.balance
	a.nonce = other.nonce
	a.storageRoot = other.storageRoot
	a.codeHash = other.codeHash
	a.code = other.code
	a.codeKnown = other.codeKnown
	a.codeSize = other.codeSize
	a.codeSizeKnown = other.codeSizeKnown
	a.addressHash = other.addressHash
	a.storageCache.Merge(other.storageCache)
	return nil
}

// ToPod returns the plain-data form of the account: committed storage read
// from db with pending writes applied on top. Code is included if it's loaded
// or can be read from db.
func (a *Account) ToPod(db hashdb.Getter) (pod.Account, error) {
	p := pod.Account{
		Balance: a.Balance(),
		Nonce:   a.Nonce(),
		Storage: make(map[ledger.Bytes32]ledger.Bytes32),
	}
	if db != nil {
		t, err := trie.NewSecureChecked(a.storageRoot, db)
		if err != nil {
			return pod.Account{}, errors.Wrap(err, "open storage trie")
		}
		err = t.Walk(func(key, value []byte) error {
			var v uint256.Int
			if err := rlp.DecodeBytes(value, &v); err != nil {
				return errors.Wrapf(err, "decode storage %x", key)
			}
			p.Storage[ledger.BytesToBytes32(key)] = ledger.Uint256ToBytes32(&v)
			return nil
		})
		if err != nil {
			return pod.Account{}, err
		}
	}
	for k, v := range a.storageChanges {
		if v.IsZero() {
			delete(p.Storage, k)
		} else {
			p.Storage[k] = v
		}
	}

	if code, ok := a.Code(); ok {
		code = slices.Clone(code)
		p.Code = &code
	} else if db != nil && a.codeHash != nil {
		if code, err := loadCode(db, *a.codeHash); err == nil {
			code = slices.Clone(code)
			p.Code = &code
		}
	}
	return p, nil
}

// String implements fmt.Stringer. Only pending storage writes are shown.
func (a *Account) String() string {
	p, _ := a.ToPod(nil)
	return p.String()
}

func sortedKeys(m map[ledger.Bytes32]ledger.Bytes32) []ledger.Bytes32 {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b ledger.Bytes32) int { return bytes.Compare(a[:], b[:]) })
	return keys
}
