package rowfold_test

import (
	"fmt"

	"github.com/longlodw/rowfold"
)

type author struct {
	ID    int
	Name  string
	Books []string
}

type book struct {
	Title string
}

// Example shows how the rows of "authors JOIN books" fold back into one
// author per key, each owning its books.
func Example() {
	// One row per (author, book) pair, as a join returns them.
	rows := rowfold.Rows(
		rowfold.PairOf(&author{ID: 1, Name: "le guin"}, book{Title: "the dispossessed"}),
		rowfold.PairOf(&author{ID: 2, Name: "lem"}, book{Title: "solaris"}),
		rowfold.PairOf(&author{ID: 1, Name: "le guin"}, book{Title: "the lathe of heaven"}),
	)

	authors, err := rowfold.OneToMany(rows,
		func(a *author) int { return a.ID },
		func(a *author, b book) { a.Books = append(a.Books, b.Title) },
	)
	if err != nil {
		panic(err)
	}

	for _, a := range authors {
		fmt.Println(a.Name, a.Books)
	}
	// Output:
	// le guin [the dispossessed the lathe of heaven]
	// lem [solaris]
}

func ExampleOneToManySelect() {
	type total struct {
		Author string
		Count  int
	}
	rows := rowfold.Rows(
		rowfold.PairOf(author{ID: 1, Name: "le guin"}, book{Title: "the dispossessed"}),
		rowfold.PairOf(author{ID: 1, Name: "le guin"}, book{Title: "the lathe of heaven"}),
		rowfold.PairOf(author{ID: 2, Name: "lem"}, book{Title: "solaris"}),
	)

	totals, err := rowfold.OneToManySelect(rows,
		func(a author) int { return a.ID },
		func(a author, books []book) total { return total{Author: a.Name, Count: len(books)} },
	)
	if err != nil {
		panic(err)
	}
	fmt.Println(totals)
	// Output: [{le guin 2} {lem 1}]
}
