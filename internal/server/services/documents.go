package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
	"github.com/dmitrijs2005/housekeeper/internal/server/models"
	"github.com/dmitrijs2005/housekeeper/internal/server/repositories/documents"
	"github.com/dmitrijs2005/housekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/housekeeper/internal/server/triggers"
	"github.com/dmitrijs2005/housekeeper/internal/shared"
)

const (
	usersCollection      = "users"
	householdsCollection = "households"
	membersField         = "memberIds"
	inviteCodeField      = "inviteCode"
	householdField       = "householdId"
)

// Notifier receives the notifications derived from successful writes.
type Notifier interface {
	Publish(ctx context.Context, ns []shared.Notification)
}

// DocumentService is the authorized view of the document store.
//
// Rules:
//   - users/{id} is written only by that user and read by them or by members
//     of their household;
//   - households/{h} and everything below it is read and written by members;
//   - a household is created by its creator, who must be its first member;
//   - a non-member joins by adding only themselves to memberIds;
//   - households are found by invite code only.
type DocumentService struct {
	repomanager repomanager.RepositoryManager
	notifier    Notifier
	logger      logging.Logger
	now         func() time.Time
}

func NewDocumentService(m repomanager.RepositoryManager, notifier Notifier, logger logging.Logger) *DocumentService {
	return &DocumentService{
		repomanager: m,
		notifier:    notifier,
		logger:      logger.With("module", "documents"),
		now:         time.Now,
	}
}

func denied(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrPermissionDenied, fmt.Sprintf(format, args...))
}

// scope is what a path refers to.
type scope struct {
	path        string
	collection  string
	id          string
	householdID string
	user        bool
	household   bool
	item        bool
}

func parseScope(path string) (scope, error) {
	collection, id, err := models.SplitPath(path)
	if err != nil {
		return scope{}, err
	}
	sc := scope{path: path, collection: collection, id: id}
	segs := strings.Split(path, "/")
	switch {
	case segs[0] == usersCollection && len(segs) == 2:
		sc.user = true
	case segs[0] == householdsCollection && len(segs) == 2:
		sc.household = true
		sc.householdID = id
	case segs[0] == householdsCollection && len(segs) == 4 && (segs[2] == "chores" || segs[2] == "notes"):
		sc.item = true
		sc.householdID = segs[1]
	default:
		return scope{}, denied("unsupported path %q", path)
	}
	return sc, nil
}

func getOrNil(ctx context.Context, docs documents.Repository, path string) (models.Document, error) {
	d, err := docs.Get(ctx, path)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return d.Data, nil
}

// members returns the member list of a household, or ErrorNotFound.
func members(ctx context.Context, docs documents.Repository, householdID string) ([]string, error) {
	d, err := docs.Get(ctx, householdsCollection+"/"+householdID)
	if err != nil {
		return nil, err
	}
	return d.Data.Strings(membersField), nil
}

func requireMember(ctx context.Context, docs documents.Repository, userID, householdID string) ([]string, error) {
	m, err := members(ctx, docs, householdID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, denied("household %s does not exist", householdID)
		}
		return nil, err
	}
	if !slices.Contains(m, userID) {
		return nil, denied("not a member of household %s", householdID)
	}
	return m, nil
}

func (s *DocumentService) canReadUser(ctx context.Context, docs documents.Repository, userID, targetID string) error {
	if userID == targetID {
		return nil
	}
	me, err := getOrNil(ctx, docs, usersCollection+"/"+userID)
	if err != nil {
		return err
	}
	them, err := getOrNil(ctx, docs, usersCollection+"/"+targetID)
	if err != nil {
		return err
	}
	if me != nil && them != nil {
		h := me.String(householdField)
		if h != "" && h == them.String(householdField) {
			return nil
		}
	}
	return denied("cannot read user %s", targetID)
}

// Get returns the document at path.
func (s *DocumentService) Get(ctx context.Context, userID, path string) (models.Document, error) {
	sc, err := parseScope(path)
	if err != nil {
		return nil, err
	}
	docs := s.repomanager.Documents()

	switch {
	case sc.user:
		if err := s.canReadUser(ctx, docs, userID, sc.id); err != nil {
			return nil, err
		}
	default:
		if _, err := requireMember(ctx, docs, userID, sc.householdID); err != nil {
			return nil, err
		}
	}

	d, err := docs.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.Data, nil
}

func checkID(sc scope, data models.Document) error {
	if id, ok := data["id"]; ok && id != sc.id {
		return fmt.Errorf("%w: document id does not match path", common.ErrorValidation)
	}
	return nil
}

// Set creates or replaces the document at path.
func (s *DocumentService) Set(ctx context.Context, userID, path string, data models.Document) error {
	sc, err := parseScope(path)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: empty document", common.ErrorValidation)
	}
	if err := checkID(sc, data); err != nil {
		return err
	}

	var change triggers.Change
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.Repositories) error {
		docs := tx.Documents
		before, err := getOrNil(ctx, docs, path)
		if err != nil {
			return err
		}

		var hm []string
		switch {
		case sc.user:
			if sc.id != userID {
				return denied("cannot write user %s", sc.id)
			}
		case sc.household:
			after := data.Strings(membersField)
			if before == nil {
				if data.String("createdBy") != userID || !slices.Contains(after, userID) {
					return denied("household must be created by its first member")
				}
			} else if !slices.Contains(before.Strings(membersField), userID) {
				return denied("not a member of household %s", sc.householdID)
			}
			hm = after
		case sc.item:
			if h := data.String(householdField); h != "" && h != sc.householdID {
				return fmt.Errorf("%w: householdId does not match path", common.ErrorValidation)
			}
			if hm, err = requireMember(ctx, docs, userID, sc.householdID); err != nil {
				return err
			}
		}

		if err := docs.Set(ctx, &models.StoredDocument{Path: path, Collection: sc.collection, Data: data}); err != nil {
			return err
		}
		change = triggers.Change{Path: path, Actor: userID, Before: before, After: data, Members: hm}
		return nil
	})
	if err != nil {
		return err
	}

	documentWrites.WithLabelValues(opSet).Inc()
	s.fire(ctx, change)
	return nil
}

// Delete removes the document at path. Deleting a missing document succeeds.
func (s *DocumentService) Delete(ctx context.Context, userID, path string) error {
	sc, err := parseScope(path)
	if err != nil {
		return err
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.Repositories) error {
		docs := tx.Documents
		switch {
		case sc.user:
			return denied("users cannot be deleted")
		case sc.household:
			before, err := getOrNil(ctx, docs, path)
			if err != nil || before == nil {
				return err
			}
			if before.String("createdBy") != userID {
				return denied("only the creator can delete household %s", sc.householdID)
			}
		case sc.item:
			if _, err := requireMember(ctx, docs, userID, sc.householdID); err != nil {
				return err
			}
		}

		if err := docs.Delete(ctx, path); err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	documentWrites.WithLabelValues(opDelete).Inc()
	return nil
}

// UpdateFields merges fields into an existing document.
func (s *DocumentService) UpdateFields(ctx context.Context, userID, path string, fields models.Document) error {
	sc, err := parseScope(path)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields", common.ErrorValidation)
	}
	if err := checkID(sc, fields); err != nil {
		return err
	}

	var change triggers.Change
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.Repositories) error {
		docs := tx.Documents
		before, err := docs.Get(ctx, path)
		if err != nil {
			return err
		}

		var hm []string
		switch {
		case sc.user:
			if sc.id != userID {
				return denied("cannot write user %s", sc.id)
			}
		case sc.household:
			current := before.Data.Strings(membersField)
			if !slices.Contains(current, userID) {
				if err := checkJoin(userID, current, fields); err != nil {
					return err
				}
			}
		case sc.item:
			if _, ok := fields[householdField]; ok && fields.String(householdField) != sc.householdID {
				return fmt.Errorf("%w: householdId does not match path", common.ErrorValidation)
			}
			if hm, err = requireMember(ctx, docs, userID, sc.householdID); err != nil {
				return err
			}
		}

		after, err := docs.Merge(ctx, path, fields)
		if err != nil {
			return err
		}
		if sc.household {
			hm = after.Data.Strings(membersField)
		}
		change = triggers.Change{Path: path, Actor: userID, Before: before.Data, After: after.Data, Members: hm}
		return nil
	})
	if err != nil {
		return err
	}

	documentWrites.WithLabelValues(opUpdate).Inc()
	s.fire(ctx, change)
	return nil
}

// checkJoin allows a non-member to change only memberIds, and only by
// appending themselves.
func checkJoin(userID string, current []string, fields models.Document) error {
	if len(fields) != 1 {
		return denied("not a member of this household")
	}
	if _, ok := fields[membersField]; !ok {
		return denied("not a member of this household")
	}
	want := append(slices.Clone(current), userID)
	if !slices.Equal(fields.Strings(membersField), want) {
		return denied("joining may only add the caller to %s", membersField)
	}
	return nil
}

// Query returns the documents of collection whose field equals value.
func (s *DocumentService) Query(ctx context.Context, userID, collection, field string, value any) ([]models.Document, error) {
	if !models.ValidCollection(collection) || field == "" {
		return nil, fmt.Errorf("%w: bad query", common.ErrorValidation)
	}
	docs := s.repomanager.Documents()

	segs := strings.Split(collection, "/")
	switch {
	case collection == householdsCollection:
		if field != inviteCodeField {
			return nil, denied("households can only be looked up by %s", inviteCodeField)
		}
	case collection == usersCollection:
		me, err := getOrNil(ctx, docs, usersCollection+"/"+userID)
		if err != nil {
			return nil, err
		}
		v, _ := value.(string)
		if field != householdField || me == nil || v == "" || me.String(householdField) != v {
			return nil, denied("users can only be listed by your own %s", householdField)
		}
	case len(segs) == 3 && segs[0] == householdsCollection && (segs[2] == "chores" || segs[2] == "notes"):
		if _, err := requireMember(ctx, docs, userID, segs[1]); err != nil {
			return nil, err
		}
	default:
		return nil, denied("unsupported collection %q", collection)
	}

	found, err := docs.Query(ctx, collection, field, value)
	if err != nil {
		return nil, err
	}
	out := make([]models.Document, 0, len(found))
	for _, d := range found {
		out = append(out, d.Data)
	}
	return out, nil
}

func (s *DocumentService) fire(ctx context.Context, c triggers.Change) {
	if s.notifier == nil {
		return
	}
	c.At = s.now().UTC()
	ns := triggers.Detect(c)
	for _, n := range ns {
		triggersFired.WithLabelValues(n.Type).Inc()
	}
	if len(ns) > 0 {
		s.notifier.Publish(ctx, ns)
	}
}
