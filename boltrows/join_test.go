package boltrows

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/longlodw/rowfold"
	"github.com/longlodw/rowfold/record"
)

type author struct {
	ID    int    `db:"Id"`
	Name  string `db:"name"`
	Books []*book
}

type book struct {
	ID       int    `db:"Id"`
	AuthorID int    `db:"author_id"`
	Title    string `db:"title"`
	Chapters []*chapter
}

type chapter struct {
	ID      int    `db:"Id"`
	BookID  int    `db:"book_id"`
	Heading string `db:"heading"`
}

func TestJoin_FanOutRows(t *testing.T) {
	db := setupTestDB(t)
	err := db.View(func(tx *Tx) error {
		var got [][2]any
		for rows, err := range tx.Join("authors", Edge{Relation: "books", Column: "author_id", ParentColumn: "Id"}) {
			require.NoError(t, err)
			require.Len(t, rows, 2)
			name, _ := rows[0].Get("name")
			title, _ := rows[1].Get("title")
			got = append(got, [2]any{name, title})
		}
		require.Equal(t, [][2]any{
			{"le guin", "earthsea"},
			{"le guin", "the dispossessed"},
			{"herbert", "dune"},
			{"herbert", "dune messiah"},
		}, got)
		return nil
	})
	require.NoError(t, err)
}

func TestJoin_FoldOneToMany(t *testing.T) {
	db := setupTestDB(t)
	err := db.View(func(tx *Tx) error {
		rows := record.Pairs(
			tx.Join("authors", Edge{Relation: "books", Column: "author_id", ParentColumn: "Id"}),
			record.Struct[author](), record.Struct[book](),
		)
		authors, err := rowfold.OneToMany(rows,
			func(a *author) int { return a.ID },
			func(a *author, b *book) { a.Books = append(a.Books, b) },
		)
		require.NoError(t, err)
		require.Len(t, authors, 2)
		require.Equal(t, "le guin", authors[0].Name)
		require.Len(t, authors[0].Books, 2)
		require.Equal(t, "herbert", authors[1].Name)
		require.Equal(t, "dune messiah", authors[1].Books[1].Title)
		return nil
	})
	require.NoError(t, err)
}

func TestJoin_FoldNested(t *testing.T) {
	db := setupTestDB(t)
	err := db.View(func(tx *Tx) error {
		rows := record.Triples(
			tx.Join("authors",
				Edge{Relation: "books", Column: "author_id", ParentColumn: "Id"},
				Edge{Relation: "chapters", Column: "book_id", ParentColumn: "Id"},
			),
			record.Struct[author](), record.Struct[book](), record.Struct[chapter](),
		)
		authors, err := rowfold.OneToManyNested(rows,
			func(a *author) int { return a.ID },
			func(b *book) int { return b.ID },
			func(a *author, b *book) { a.Books = append(a.Books, b) },
			func(b *book, c *chapter) { b.Chapters = append(b.Chapters, c) },
		)
		require.NoError(t, err)
		require.Len(t, authors, 2)

		leGuin := authors[0]
		require.Len(t, leGuin.Books, 2)
		require.Equal(t, "earthsea", leGuin.Books[0].Title)
		require.Len(t, leGuin.Books[0].Chapters, 2)
		require.Equal(t, "the shadow", leGuin.Books[0].Chapters[1].Heading)
		require.Equal(t, "anarres", leGuin.Books[1].Chapters[0].Heading)

		herbert := authors[1]
		require.Len(t, herbert.Books, 1)
		require.Equal(t, "book one", herbert.Books[0].Chapters[0].Heading)
		return nil
	})
	require.NoError(t, err)
}

func TestJoin_SingleRelation(t *testing.T) {
	db := setupTestDB(t)
	err := db.View(func(tx *Tx) error {
		count := 0
		for rows, err := range tx.Join("authors") {
			require.NoError(t, err)
			require.Len(t, rows, 1)
			count++
		}
		require.Equal(t, 3, count)
		return nil
	})
	require.NoError(t, err)
}

func TestJoin_Errors(t *testing.T) {
	db := setupTestDB(t)
	err := db.View(func(tx *Tx) error {
		for _, err := range tx.Join("publishers") {
			require.EqualError(t, err, ErrRelationNotFound("publishers").Error())
		}
		for _, err := range tx.Join("authors", Edge{Relation: "books", Column: "author_id", ParentColumn: "uuid"}) {
			require.EqualError(t, err, ErrColumnNotFound("uuid").Error())
		}
		for _, err := range tx.Join("authors", Edge{Relation: "books", Column: "writer", ParentColumn: "Id"}) {
			require.EqualError(t, err, ErrColumnNotFound("writer").Error())
		}

		authors, err := rowfold.OneToMany(
			record.Pairs(tx.Join("publishers"), record.Struct[author](), record.Struct[book]()),
			func(a *author) int { return a.ID },
			func(a *author, b *book) {},
		)
		require.EqualError(t, err, ErrRelationNotFound("publishers").Error())
		require.Nil(t, authors)
		return nil
	})
	require.NoError(t, err)
}

func TestJoin_BreakStopsEarly(t *testing.T) {
	db := setupTestDB(t)
	err := db.View(func(tx *Tx) error {
		seen := 0
		for _, err := range tx.Join("authors", Edge{Relation: "books", Column: "author_id", ParentColumn: "Id"}) {
			require.NoError(t, err)
			seen++
			if seen == 3 {
				break
			}
		}
		require.Equal(t, 3, seen)
		return nil
	})
	require.NoError(t, err)
}
