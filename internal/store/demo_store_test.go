package store_test

import (
	"context"
	"path/filepath"
	"time"

	"lottodesk/internal/db"
	"lottodesk/internal/models"
	"lottodesk/internal/store"
	"lottodesk/internal/testhelpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func alice() models.Demo {
	return models.Demo{
		ID:       2,
		Name:     ptr("Alice"),
		Money:    money("100.5"),
		Birthday: ptr(time.Date(1995, 5, 1, 8, 30, 0, 0, time.UTC)),
	}
}

func expectSameDemo(actual *models.Demo, expected models.Demo) {
	GinkgoHelper()

	Expect(actual).NotTo(BeNil())
	Expect(actual.ID).To(Equal(expected.ID))
	Expect(actual.Name).To(Equal(expected.Name))

	Expect(actual.Money.Valid).To(Equal(expected.Money.Valid))
	if expected.Money.Valid {
		Expect(actual.Money.Decimal.Equal(expected.Money.Decimal)).To(BeTrue(),
			"money %s != %s", actual.Money.Decimal, expected.Money.Decimal)
	}

	if expected.Birthday == nil {
		Expect(actual.Birthday).To(BeNil())
	} else {
		Expect(actual.Birthday).NotTo(BeNil())
		Expect(*actual.Birthday).To(BeTemporally("==", *expected.Birthday))
	}
}

var _ = Describe("DemoStore", func() {
	var (
		s   *store.DemoStore
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		s = store.New(dbOpts)
	})

	AfterEach(func() {
		testhelpers.CleanupDB(dbOpts)
	})

	It("runs the create, read, update, delete lifecycle", func() {
		Expect(s.Create(ctx, alice())).To(Succeed())

		found, err := s.GetByID(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		expectSameDemo(found, alice())

		affected, err := s.Update(ctx, 2, store.DemoUpdate{Money: ptr(decimal.RequireFromString("199.99"))})
		Expect(err).NotTo(HaveOccurred())
		Expect(affected).To(Equal(int64(1)))

		updated := alice()
		updated.Money = money("199.99")
		found, err = s.GetByID(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		expectSameDemo(found, updated)

		deleted, err := s.Delete(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(deleted).To(Equal(int64(1)))

		found, err = s.GetByID(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeNil())
	})

	Describe("Create", func() {
		It("stores null columns", func() {
			Expect(s.Create(ctx, models.Demo{ID: 7})).To(Succeed())

			found, err := s.GetByID(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			expectSameDemo(found, models.Demo{ID: 7})
		})

		It("fails on a duplicate id and keeps the original row", func() {
			Expect(s.Create(ctx, alice())).To(Succeed())

			duplicate := models.Demo{ID: 2, Name: ptr("Mallory")}
			Expect(s.Create(ctx, duplicate)).To(MatchError(gorm.ErrDuplicatedKey))

			found, err := s.GetByID(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(*found.Name).To(Equal("Alice"))
		})

		It("fails when the database cannot be opened", func() {
			broken := store.New(store.Options{Driver: "sqlite", DSN: filepath.Join(GinkgoT().TempDir(), "missing", "demo.db")})
			Expect(broken.Create(ctx, alice())).NotTo(Succeed())
		})

		It("fails for an unsupported driver", func() {
			broken := store.New(store.Options{Driver: "oracle"})
			Expect(broken.Create(ctx, alice())).To(MatchError(db.ErrUnsupportedDriver))
		})
	})

	Describe("GetByID", func() {
		It("returns nil for an unknown id", func() {
			found, err := s.GetByID(ctx, 404)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("GetAll", func() {
		It("returns an empty slice for an empty table", func() {
			demos, err := s.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(demos).To(BeEmpty())
			Expect(demos).NotTo(BeNil())
		})

		It("orders rows by id", func() {
			for _, id := range []int64{3, 1, 2} {
				Expect(s.Create(ctx, models.Demo{ID: id})).To(Succeed())
			}

			demos, err := s.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(demos).To(HaveLen(3))
			Expect([]int64{demos[0].ID, demos[1].ID, demos[2].ID}).To(Equal([]int64{1, 2, 3}))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			Expect(s.Create(ctx, alice())).To(Succeed())
		})

		It("does nothing without supplied fields", func() {
			before, err := s.GetByID(ctx, 2)
			Expect(err).NotTo(HaveOccurred())

			affected, err := s.Update(ctx, 2, store.DemoUpdate{})
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(BeZero())

			after, err := s.GetByID(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			expectSameDemo(after, *before)
		})

		It("does not open a connection without supplied fields", func() {
			broken := store.New(store.Options{Driver: "oracle"})
			affected, err := broken.Update(ctx, 2, store.DemoUpdate{})
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(BeZero())
		})

		It("changes only the supplied columns", func() {
			birthday := time.Date(1996, 6, 2, 9, 0, 0, 0, time.UTC)
			affected, err := s.Update(ctx, 2, store.DemoUpdate{Name: ptr("Alicia"), Birthday: &birthday})
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(1)))

			expected := alice()
			expected.Name = ptr("Alicia")
			expected.Birthday = &birthday

			found, err := s.GetByID(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			expectSameDemo(found, expected)
		})

		It("returns zero for an unknown id", func() {
			affected, err := s.Update(ctx, 99, store.DemoUpdate{Name: ptr("Nobody")})
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(BeZero())
		})
	})

	Describe("Delete", func() {
		It("returns zero for an unknown id", func() {
			affected, err := s.Delete(ctx, 99)
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(BeZero())
		})

		It("leaves other rows alone", func() {
			Expect(s.Create(ctx, alice())).To(Succeed())
			Expect(s.Create(ctx, models.Demo{ID: 3, Name: ptr("Bob")})).To(Succeed())

			affected, err := s.Delete(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(1)))

			demos, err := s.GetAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(demos).To(HaveLen(1))
			Expect(*demos[0].Name).To(Equal("Bob"))
		})
	})
})
