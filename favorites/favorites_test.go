package favorites_test

import (
	"context"
	"errors"

	"github.com/escapade-app/escapade/favorites"
	"github.com/escapade-app/escapade/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var _ = Describe("Toggle", func() {
	var (
		ctx     context.Context
		mem     *memStore
		service *favorites.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		mem = newMemStore()
		service = favorites.NewService(mem, newMemLookup("x", "y", "z", "w"), zap.NewNop().Sugar())
	})

	It("favorites an activity that isn't favorited", func() {
		added, err := service.Toggle(ctx, "alice", "x")
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeTrue())

		favs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(HaveLen(1))
		Expect(favs[0].ActivityID).To(Equal("x"))
		Expect(favs[0].Order).To(Equal(int64(0)))
	})

	It("unfavorites an activity that is favorited", func() {
		_, err := service.Toggle(ctx, "alice", "x")
		Expect(err).NotTo(HaveOccurred())

		added, err := service.Toggle(ctx, "alice", "x")
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeFalse())

		favs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(BeEmpty())
	})

	It("leaves exactly one favorite after an odd number of toggles", func() {
		for i := 0; i < 5; i++ {
			_, err := service.Toggle(ctx, "alice", "x")
			Expect(err).NotTo(HaveOccurred())
		}

		favs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(HaveLen(1))
	})

	It("assigns max + 1 as the order of a new favorite", func() {
		for _, id := range []string{"x", "y", "z"} {
			_, err := service.Toggle(ctx, "alice", id)
			Expect(err).NotTo(HaveOccurred())
		}

		favs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(HaveLen(3))

		for i, fav := range favs {
			Expect(fav.Order).To(Equal(int64(i)))
		}
	})

	It("doesn't fill order gaps left by removals", func() {
		for _, id := range []string{"x", "y", "z"} {
			_, err := service.Toggle(ctx, "alice", id)
			Expect(err).NotTo(HaveOccurred())
		}

		// Removing y leaves the gap 0, _, 2.
		_, err := service.Toggle(ctx, "alice", "y")
		Expect(err).NotTo(HaveOccurred())

		added, err := service.Toggle(ctx, "alice", "w")
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeTrue())

		favs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(HaveLen(3))
		Expect(favs[2].ActivityID).To(Equal("w"))
		Expect(favs[2].Order).To(Equal(int64(3)))
	})

	It("fails with not found for an unknown activity", func() {
		_, err := service.Toggle(ctx, "alice", "ghost")
		Expect(err).To(MatchError(store.ErrActivityNotFound))

		favs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(BeEmpty())
	})

	It("compensates with a delete when the insert loses a race", func() {
		mem.conflictNext = true

		added, err := service.Toggle(ctx, "alice", "x")
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeFalse())

		favs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(BeEmpty())
	})

	It("propagates unexpected storage errors unchanged", func() {
		boom := errors.New("connection reset")
		failing := &failingStore{memStore: mem, err: boom}
		service = favorites.NewService(failing, newMemLookup("x"), zap.NewNop().Sugar())

		_, err := service.Toggle(ctx, "alice", "x")
		Expect(err).To(MatchError(boom))
	})

	It("never duplicates a favorite under concurrent toggles", func() {
		var eg errgroup.Group
		for i := 0; i < 8; i++ {
			eg.Go(func() error {
				_, err := service.Toggle(ctx, "alice", "x")
				return err
			})
		}

		Expect(eg.Wait()).NotTo(HaveOccurred())

		favs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(len(favs)).To(BeNumerically("<=", 1))
	})

	It("doesn't observe another user's favorites", func() {
		_, err := service.Toggle(ctx, "alice", "x")
		Expect(err).NotTo(HaveOccurred())

		favs, err := service.ListByUser(ctx, "bob")
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(BeEmpty())

		added, err := service.Toggle(ctx, "bob", "x")
		Expect(err).NotTo(HaveOccurred())
		Expect(added).To(BeTrue())

		aliceFavs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(aliceFavs).To(HaveLen(1))
	})
})

var _ = Describe("ActivityIDs", func() {
	var (
		ctx     context.Context
		service *favorites.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		service = favorites.NewService(newMemStore(), newMemLookup("x", "y"), zap.NewNop().Sugar())
	})

	It("returns the favorited activity ids", func() {
		for _, id := range []string{"x", "y"} {
			_, err := service.Toggle(ctx, "alice", id)
			Expect(err).NotTo(HaveOccurred())
		}

		ids, err := service.ActivityIDs(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(ConsistOf("x", "y"))
	})

	It("returns an empty slice for a user without favorites", func() {
		ids, err := service.ActivityIDs(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).To(BeEmpty())
	})
})

var _ = Describe("Reorder", func() {
	var (
		ctx     context.Context
		service *favorites.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		service = favorites.NewService(newMemStore(), newMemLookup("x", "y", "z"), zap.NewNop().Sugar())

		for _, id := range []string{"x", "y", "z"} {
			_, err := service.Toggle(ctx, "alice", id)
			Expect(err).NotTo(HaveOccurred())
		}
	})

	assertOriginalOrder := func() {
		favs, err := service.ListByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(HaveLen(3))

		for i, id := range []string{"x", "y", "z"} {
			Expect(favs[i].ActivityID).To(Equal(id))
		}
	}

	It("applies a permutation with order = index", func() {
		favs, err := service.Reorder(ctx, "alice", []string{"y", "z", "x"})
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(HaveLen(3))

		for i, id := range []string{"y", "z", "x"} {
			Expect(favs[i].ActivityID).To(Equal(id))
			Expect(favs[i].Order).To(Equal(int64(i)))
		}
	})

	It("rejects duplicate activity ids", func() {
		_, err := service.Reorder(ctx, "alice", []string{"x", "x", "y"})
		Expect(err).To(MatchError(favorites.ErrDuplicateActivityIDs))
		assertOriginalOrder()
	})

	It("rejects a count mismatch", func() {
		_, err := service.Reorder(ctx, "alice", []string{"y", "z"})
		Expect(err).To(MatchError(favorites.ErrCountMismatch))
		assertOriginalOrder()
	})

	It("rejects ids that aren't favorited", func() {
		_, err := service.Reorder(ctx, "alice", []string{"y", "z", "w"})
		Expect(err).To(MatchError(favorites.ErrNotFavorited))
		assertOriginalOrder()
	})

	It("accepts an empty reorder for a user without favorites", func() {
		favs, err := service.Reorder(ctx, "bob", []string{})
		Expect(err).NotTo(HaveOccurred())
		Expect(favs).To(BeEmpty())
	})
})

var _ = Describe("RemoveByActivity", func() {
	var (
		ctx     context.Context
		service *favorites.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		service = favorites.NewService(newMemStore(), newMemLookup("x", "y"), zap.NewNop().Sugar())
	})

	It("removes the activity from every user's favorites", func() {
		for _, user := range []string{"alice", "bob"} {
			for _, id := range []string{"x", "y"} {
				_, err := service.Toggle(ctx, user, id)
				Expect(err).NotTo(HaveOccurred())
			}
		}

		Expect(service.RemoveByActivity(ctx, "x")).To(Succeed())

		for _, user := range []string{"alice", "bob"} {
			ids, err := service.ActivityIDs(ctx, user)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(ConsistOf("y"))
		}
	})

	It("is idempotent", func() {
		Expect(service.RemoveByActivity(ctx, "x")).To(Succeed())
		Expect(service.RemoveByActivity(ctx, "x")).To(Succeed())
	})
})

// failingStore fails every lookup with a fixed error.
type failingStore struct {
	*memStore
	err error
}

func (f *failingStore) Favorite(context.Context, string, string) (*store.Favorite, error) {
	return nil, f.err
}
