package author

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// memRepo 基于map的仓储实现,只用于领域服务测试
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Author
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[int64]Author)}
}

func (r *memRepo) Create(_ context.Context, a *Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	r.rows[a.ID] = *a
	return nil
}

func (r *memRepo) Save(ctx context.Context, a *Author) error {
	if a.ID == 0 {
		return r.Create(ctx, a)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[a.ID] = *a
	if a.ID > r.nextID {
		r.nextID = a.ID
	}
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id int64) (*Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, ErrAuthorNotFound
	}
	return &a, nil
}

func (r *memRepo) filter(keep func(Author) bool) []*Author {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*Author{}
	for _, a := range r.rows {
		if keep(a) {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memRepo) FindAll(context.Context) ([]*Author, error) {
	return r.filter(func(Author) bool { return true }), nil
}

func (r *memRepo) FindByName(_ context.Context, name string) (*Author, error) {
	found := r.filter(func(a Author) bool { return a.Name == name })
	if len(found) == 0 {
		return nil, ErrAuthorNotFound
	}
	return found[0], nil
}

func (r *memRepo) FindByAgeLessThan(_ context.Context, age int) ([]*Author, error) {
	return r.filter(func(a Author) bool { return a.Age != nil && *a.Age < age }), nil
}

func (r *memRepo) FindByAgeGreaterThan(_ context.Context, age int) ([]*Author, error) {
	return r.filter(func(a Author) bool { return a.Age != nil && *a.Age > age }), nil
}

func (r *memRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestAuthorValidate(t *testing.T) {
	assert.NoError(t, NewAuthor("Abigail Rose", intPtr(80)).Validate())
	assert.NoError(t, NewAuthor("Anna Adams", nil).Validate())

	for _, name := range []string{"", "   ", "\t\n"} {
		err := NewAuthor(name, nil).Validate()
		require.Error(t, err, "姓名%q应校验失败", name)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
	}

	assert.NoError(t, Patch{}.Validate())
	assert.NoError(t, Patch{Name: strPtr("UPDATED")}.Validate())
	assert.Error(t, Patch{Name: strPtr(" ")}.Validate())

	// 姓名只要求非空白,不限制长度
	long := strings.Repeat("a", 300)
	assert.NoError(t, NewAuthor(long, nil).Validate())
	assert.NoError(t, Patch{Name: &long}.Validate())
}

func TestService_CreateAuthor(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	created, err := svc.CreateAuthor(ctx, &Author{ID: 99, Name: "John Smith", Age: intPtr(70)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID, "传入的ID应被忽略")

	got, err := svc.GetAuthor(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.CreateAuthor(ctx, &Author{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestService_ListAuthors(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	for _, a := range []*Author{
		NewAuthor("Abigail Rose", intPtr(80)),
		NewAuthor("John Smith", intPtr(70)),
		NewAuthor("Anna Adams", intPtr(30)),
		NewAuthor("Nobody Knows", nil),
	} {
		_, err := svc.CreateAuthor(ctx, a)
		require.NoError(t, err)
	}

	all, err := svc.ListAuthors(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	byName, err := svc.ListAuthors(ctx, ListFilter{Name: strPtr("John Smith")})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, 70, *byName[0].Age)

	none, err := svc.ListAuthors(ctx, ListFilter{Name: strPtr("Missing")})
	require.NoError(t, err)
	assert.Empty(t, none)

	younger, err := svc.ListAuthors(ctx, ListFilter{AgeLessThan: intPtr(75)})
	require.NoError(t, err)
	assert.Len(t, younger, 2)

	older, err := svc.ListAuthors(ctx, ListFilter{AgeGreaterThan: intPtr(75)})
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, "Abigail Rose", older[0].Name)

	_, err = svc.ListAuthors(ctx, ListFilter{Name: strPtr("x"), AgeLessThan: intPtr(1)})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestService_ReplaceAndPatch(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	created, err := svc.CreateAuthor(ctx, NewAuthor("X", intPtr(30)))
	require.NoError(t, err)

	t.Run("PATCH只覆盖提供的字段", func(t *testing.T) {
		patched, err := svc.PatchAuthor(ctx, created.ID, Patch{Name: strPtr("UPDATED")})
		require.NoError(t, err)
		assert.Equal(t, "UPDATED", patched.Name)
		require.NotNil(t, patched.Age)
		assert.Equal(t, 30, *patched.Age)
	})

	t.Run("PUT清空未提供的字段", func(t *testing.T) {
		replaced, err := svc.ReplaceAuthor(ctx, created.ID, &Author{Name: "Replaced"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, replaced.ID)
		assert.Equal(t, "Replaced", replaced.Name)
		assert.Nil(t, replaced.Age)
	})

	t.Run("目标消失返回内部错误", func(t *testing.T) {
		_, err := svc.PatchAuthor(ctx, 404, Patch{Age: intPtr(1)})
		assert.ErrorIs(t, err, ErrAuthorVanished)

		_, err = svc.ReplaceAuthor(ctx, 404, &Author{Name: "Ghost"})
		assert.ErrorIs(t, err, ErrAuthorVanished)
	})
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	created, err := svc.CreateAuthor(ctx, NewAuthor("Temp", nil))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAuthor(ctx, created.ID))
	require.NoError(t, svc.DeleteAuthor(ctx, created.ID))

	exists, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestService_SaveEmbedded(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	fresh := NewAuthor("Embedded", nil)
	require.NoError(t, svc.SaveEmbedded(ctx, fresh))
	assert.NotZero(t, fresh.ID)

	withID := &Author{ID: 42, Name: "Explicit", Age: intPtr(50)}
	require.NoError(t, svc.SaveEmbedded(ctx, withID))
	got, err := svc.GetAuthor(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Explicit", got.Name)

	assert.ErrorIs(t, svc.SaveEmbedded(ctx, &Author{Name: ""}), ErrInvalidName)
}
