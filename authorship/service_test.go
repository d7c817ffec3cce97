package authorship_test

import (
	"slices"
	"testing"

	"labman/authorship"
	"labman/schema"

	"gorm.io/gorm"
)

func createPerson(t *testing.T, db *gorm.DB, id uint, first, last string) {
	person := schema.Person{Id: id, FirstName: first, LastName: last}
	if err := db.Create(&person).Error; err != nil {
		t.Fatalf("error creating person: %v", err)
	}
}

func createPublication(t *testing.T, db *gorm.DB, id uint, title string) {
	publication := schema.Publication{Id: id, Title: title, Type: schema.JournalPaper}
	if err := db.Create(&publication).Error; err != nil {
		t.Fatalf("error creating publication: %v", err)
	}
}

func ranksFor(t *testing.T, engine *authorship.Service, publicationId uint) []int {
	authorships, err := engine.GetAuthorshipsFor(publicationId)
	if err != nil {
		t.Fatalf("error listing authorships: %v", err)
	}
	ranks := make([]int, 0, len(authorships))
	for _, a := range authorships {
		ranks = append(ranks, a.AuthorRank)
	}
	return ranks
}

func checkContiguous(t *testing.T, engine *authorship.Service, publicationId uint) {
	t.Helper()
	ranks := ranksFor(t, engine, publicationId)
	for i, rank := range ranks {
		if rank != i {
			t.Fatalf("ranks for publication %d are not contiguous: %v", publicationId, ranks)
		}
	}
}

func mustAdd(t *testing.T, engine *authorship.Service, personId, publicationId uint) {
	t.Helper()
	added, err := engine.AddAuthorship(personId, publicationId)
	if err != nil {
		t.Fatalf("error adding authorship: %v", err)
	}
	if !added {
		t.Fatalf("expected authorship (%d, %d) to be added", personId, publicationId)
	}
}

func TestAddAuthorshipAppendsAsLastAuthor(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPublication(t, db, 10, "pub")
	for i, id := range []uint{1, 2, 3} {
		createPerson(t, db, id, "F", "L")
		mustAdd(t, engine, id, 10)

		authorships, err := engine.GetAuthorshipsFor(10)
		if err != nil {
			t.Fatal(err)
		}
		if got := authorships[len(authorships)-1]; got.PersonId != id || got.AuthorRank != i {
			t.Errorf("expected person %d appended at rank %d, got (%d, %d)", id, i, got.PersonId, got.AuthorRank)
		}
	}

	checkContiguous(t, engine, 10)
}

func TestAddAuthorshipRejectsDuplicatePair(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPerson(t, db, 1, "F", "L")
	createPublication(t, db, 10, "pub")

	mustAdd(t, engine, 1, 10)

	added, err := engine.AddAuthorship(1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Error("duplicate authorship should not be added")
	}

	added, err = engine.AddAuthorshipAtRank(1, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Error("duplicate authorship should not be added at explicit rank")
	}

	if ranks := ranksFor(t, engine, 10); len(ranks) != 1 {
		t.Errorf("expected a single authorship, got ranks %v", ranks)
	}
}

func TestAddAuthorshipUnknownPersonOrPublication(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPerson(t, db, 1, "F", "L")
	createPublication(t, db, 10, "pub")

	if added, err := engine.AddAuthorship(99, 10); err != nil || added {
		t.Errorf("unknown person: added=%v err=%v", added, err)
	}
	if added, err := engine.AddAuthorship(1, 99); err != nil || added {
		t.Errorf("unknown publication: added=%v err=%v", added, err)
	}
}

func TestAddAuthorshipAtRankShiftsSiblings(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPublication(t, db, 1234, "pub")
	createPerson(t, db, 1, "F1", "L1")
	createPerson(t, db, 2, "F2", "L2")
	createPerson(t, db, 3, "F3", "L3")

	mustAdd(t, engine, 1, 1234)
	mustAdd(t, engine, 2, 1234)

	added, err := engine.AddAuthorshipAtRank(3, 1234, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !added {
		t.Fatal("expected insertion at rank 0")
	}

	authorships, err := engine.GetAuthorshipsFor(1234)
	if err != nil {
		t.Fatal(err)
	}

	order := make([]uint, 0, len(authorships))
	for _, a := range authorships {
		order = append(order, a.PersonId)
	}
	if !slices.Equal(order, []uint{3, 1, 2}) {
		t.Errorf("expected author order [3 1 2], got %v", order)
	}
	checkContiguous(t, engine, 1234)
}

func TestAddAuthorshipAtRankClampsOutOfRangeRank(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPublication(t, db, 10, "pub")
	createPerson(t, db, 1, "F1", "L1")
	createPerson(t, db, 2, "F2", "L2")
	createPerson(t, db, 3, "F3", "L3")

	mustAdd(t, engine, 1, 10)

	// rank far past the end appends as last
	if added, err := engine.AddAuthorshipAtRank(2, 10, 100); err != nil || !added {
		t.Fatalf("added=%v err=%v", added, err)
	}
	// negative rank clamps to first
	if added, err := engine.AddAuthorshipAtRank(3, 10, -5); err != nil || !added {
		t.Fatalf("added=%v err=%v", added, err)
	}

	authorships, err := engine.GetAuthorshipsFor(10)
	if err != nil {
		t.Fatal(err)
	}
	order := make([]uint, 0, len(authorships))
	for _, a := range authorships {
		order = append(order, a.PersonId)
	}
	if !slices.Equal(order, []uint{3, 1, 2}) {
		t.Errorf("expected author order [3 1 2], got %v", order)
	}
	checkContiguous(t, engine, 10)
}

func TestRemoveAuthorshipClosesRankGap(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPublication(t, db, 10, "pub")
	for _, id := range []uint{1, 2, 3} {
		createPerson(t, db, id, "F", "L")
		mustAdd(t, engine, id, 10)
	}

	removed, err := engine.RemoveAuthorship(2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("expected removal of middle author")
	}

	authorships, err := engine.GetAuthorshipsFor(10)
	if err != nil {
		t.Fatal(err)
	}
	order := make([]uint, 0, len(authorships))
	for _, a := range authorships {
		order = append(order, a.PersonId)
	}
	if !slices.Equal(order, []uint{1, 3}) {
		t.Errorf("expected remaining authors [1 3], got %v", order)
	}
	checkContiguous(t, engine, 10)
}

func TestRemoveAuthorshipAbsentPairIsNoOp(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPerson(t, db, 1, "F", "L")
	createPublication(t, db, 10, "pub")
	mustAdd(t, engine, 1, 10)

	removed, err := engine.RemoveAuthorship(1, 99)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Error("removing an absent authorship should reply false")
	}

	if ranks := ranksFor(t, engine, 10); len(ranks) != 1 {
		t.Errorf("no-op removal mutated state: %v", ranks)
	}
}

func TestUpdateAuthorship(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPerson(t, db, 1, "F", "L")
	createPublication(t, db, 10, "pub")
	mustAdd(t, engine, 1, 10)

	updated, err := engine.UpdateAuthorship(1, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !updated {
		t.Fatal("expected update of existing authorship")
	}

	if ranks := ranksFor(t, engine, 10); !slices.Equal(ranks, []int{5}) {
		t.Errorf("expected rank 5, got %v", ranks)
	}

	updated, err = engine.UpdateAuthorship(2, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if updated {
		t.Error("updating an absent authorship should reply false")
	}
}

func TestRanksStayContiguousUnderOperationSequence(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPublication(t, db, 10, "pub")
	for id := uint(1); id <= 6; id++ {
		createPerson(t, db, id, "F", "L")
	}

	mustAdd(t, engine, 1, 10)
	mustAdd(t, engine, 2, 10)
	if _, err := engine.AddAuthorshipAtRank(3, 10, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.RemoveAuthorship(1, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.AddAuthorshipAtRank(4, 10, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.AddAuthorship(5, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.RemoveAuthorship(3, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.AddAuthorshipAtRank(6, 10, 2); err != nil {
		t.Fatal(err)
	}

	checkContiguous(t, engine, 10)
}

func TestGetAuthorsForOrderedByRank(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPublication(t, db, 10, "pub")
	createPerson(t, db, 1, "Alice", "Smith")
	createPerson(t, db, 2, "Bob", "Jones")

	mustAdd(t, engine, 1, 10)
	if _, err := engine.AddAuthorshipAtRank(2, 10, 0); err != nil {
		t.Fatal(err)
	}

	authors, err := engine.GetAuthorsFor(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 2 || authors[0].Id != 2 || authors[1].Id != 1 {
		t.Errorf("unexpected author order: %+v", authors)
	}
}

func TestGetAuthorsForUnknownPublication(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	for _, id := range []uint{0, 424242} {
		authors, err := engine.GetAuthorsFor(id)
		if err != nil {
			t.Fatalf("unknown publication id %d should not error: %v", id, err)
		}
		if len(authors) != 0 {
			t.Errorf("expected empty author list for publication %d", id)
		}
	}
}

func TestGetPublicationsFor(t *testing.T) {
	db := schema.SetupTestDB(t)
	engine := authorship.NewService(db, nil)

	createPerson(t, db, 1, "F", "L")
	createPublication(t, db, 10, "pub a")
	createPublication(t, db, 11, "pub b")

	mustAdd(t, engine, 1, 10)
	mustAdd(t, engine, 1, 11)

	publications, err := engine.GetPublicationsFor(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(publications) != 2 {
		t.Errorf("expected 2 publications, got %d", len(publications))
	}

	publications, err = engine.GetPublicationsFor(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(publications) != 0 {
		t.Error("expected empty publication list for sentinel person id")
	}
}
