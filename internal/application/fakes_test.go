package application

import (
	"context"
	"sort"

	"github.com/oksasatya/recipe-share-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-share-api/internal/domain/repository"
)

// In-memory repositories mirroring the postgres behavior the services rely
// on: generated ids, duplicate detection and not-found sentinels.

type fakeUserRepo struct {
	nextID  int64
	users   map[int64]*entity.User
	follows map[[2]int64]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.User{}, follows: map[[2]int64]bool{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, other := range f.users {
		if other.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, other := range f.users {
		if id != u.ID && other.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Follow(_ context.Context, userID, followedID int64) error {
	f.follows[[2]int64{userID, followedID}] = true
	return nil
}

func (f *fakeUserRepo) Unfollow(_ context.Context, userID, followedID int64) error {
	delete(f.follows, [2]int64{userID, followedID})
	return nil
}

func (f *fakeUserRepo) Following(_ context.Context, userID int64) ([]entity.User, error) {
	var out []entity.User
	for pair := range f.follows {
		if pair[0] == userID {
			out = append(out, *f.users[pair[1]])
		}
	}
	sortUsers(out)
	return out, nil
}

func (f *fakeUserRepo) Followers(_ context.Context, userID int64) ([]entity.User, error) {
	var out []entity.User
	for pair := range f.follows {
		if pair[1] == userID {
			out = append(out, *f.users[pair[0]])
		}
	}
	sortUsers(out)
	return out, nil
}

func sortUsers(us []entity.User) {
	sort.Slice(us, func(i, j int) bool { return us[i].ID < us[j].ID })
}

type fakeAttributeRepo struct {
	nextID   int64
	items    map[int64]*entity.Attribute
	assigned map[int64]bool
}

func newFakeAttributeRepo() *fakeAttributeRepo {
	return &fakeAttributeRepo{items: map[int64]*entity.Attribute{}, assigned: map[int64]bool{}}
}

func (f *fakeAttributeRepo) Create(_ context.Context, a *entity.Attribute) error {
	for _, other := range f.items {
		if other.Name == a.Name {
			return repo.ErrDuplicate
		}
	}
	f.nextID++
	a.ID = f.nextID
	cp := *a
	f.items[a.ID] = &cp
	return nil
}

func (f *fakeAttributeRepo) List(_ context.Context, userID int64, assignedOnly bool) ([]entity.Attribute, error) {
	var out []entity.Attribute
	for _, a := range f.items {
		if a.UserID != userID {
			continue
		}
		if assignedOnly && !f.assigned[a.ID] {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeAttributeRepo) AllExist(_ context.Context, ids []int64) (bool, error) {
	for _, id := range ids {
		if _, ok := f.items[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// mustAdd seeds an attribute, bypassing the service layer.
func (f *fakeAttributeRepo) mustAdd(userID int64, name string) int64 {
	_ = f.Create(context.Background(), &entity.Attribute{Name: name, UserID: userID})
	return f.nextID
}

type fakeRecipeRepo struct {
	nextID  int64
	recipes map[int64]*entity.Recipe
	tags    map[int64][]int64
	ings    map[int64][]int64

	tagRepo *fakeAttributeRepo
	ingRepo *fakeAttributeRepo
}

func newFakeRecipeRepo(tags, ings *fakeAttributeRepo) *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes: map[int64]*entity.Recipe{},
		tags:    map[int64][]int64{},
		ings:    map[int64][]int64{},
		tagRepo: tags,
		ingRepo: ings,
	}
}

func (f *fakeRecipeRepo) Create(ctx context.Context, r *entity.Recipe, tagIDs, ingredientIDs []int64) error {
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.recipes[r.ID] = &cp
	_ = f.SetTags(ctx, r.ID, tagIDs)
	_ = f.SetIngredients(ctx, r.ID, ingredientIDs)
	loaded, err := f.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	*r = *loaded
	return nil
}

func (f *fakeRecipeRepo) GetByID(_ context.Context, id int64) (*entity.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	cp.Tags = f.resolve(f.tagRepo, f.tags[id])
	cp.Ingredients = f.resolve(f.ingRepo, f.ings[id])
	return &cp, nil
}

func (f *fakeRecipeRepo) resolve(attrs *fakeAttributeRepo, ids []int64) []entity.Attribute {
	out := make([]entity.Attribute, 0, len(ids))
	for _, id := range ids {
		if a, ok := attrs.items[id]; ok {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRecipeRepo) List(ctx context.Context, userID int64, tagIDs, ingredientIDs []int64) ([]entity.Recipe, error) {
	var out []entity.Recipe
	for id, r := range f.recipes {
		if r.UserID != userID {
			continue
		}
		if len(tagIDs) > 0 && !overlaps(f.tags[id], tagIDs) {
			continue
		}
		if len(ingredientIDs) > 0 && !overlaps(f.ings[id], ingredientIDs) {
			continue
		}
		loaded, _ := f.GetByID(ctx, id)
		out = append(out, *loaded)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func overlaps(have, want []int64) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (f *fakeRecipeRepo) Update(_ context.Context, r *entity.Recipe) error {
	if _, ok := f.recipes[r.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *r
	cp.Tags, cp.Ingredients = nil, nil
	f.recipes[r.ID] = &cp
	return nil
}

func (f *fakeRecipeRepo) SetTags(_ context.Context, recipeID int64, tagIDs []int64) error {
	f.tags[recipeID] = append([]int64(nil), tagIDs...)
	f.reindexAssigned(f.tagRepo, f.tags)
	return nil
}

func (f *fakeRecipeRepo) SetIngredients(_ context.Context, recipeID int64, ingredientIDs []int64) error {
	f.ings[recipeID] = append([]int64(nil), ingredientIDs...)
	f.reindexAssigned(f.ingRepo, f.ings)
	return nil
}

func (f *fakeRecipeRepo) reindexAssigned(attrs *fakeAttributeRepo, assoc map[int64][]int64) {
	attrs.assigned = map[int64]bool{}
	for _, ids := range assoc {
		for _, id := range ids {
			attrs.assigned[id] = true
		}
	}
}

func (f *fakeRecipeRepo) UpdateImage(_ context.Context, recipeID int64, image string) error {
	r, ok := f.recipes[recipeID]
	if !ok {
		return repo.ErrNotFound
	}
	r.Image = image
	return nil
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.recipes[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.recipes, id)
	delete(f.tags, id)
	delete(f.ings, id)
	return nil
}

var (
	_ repo.UserRepository      = (*fakeUserRepo)(nil)
	_ repo.AttributeRepository = (*fakeAttributeRepo)(nil)
	_ repo.RecipeRepository    = (*fakeRecipeRepo)(nil)
)
