package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Insert(u *entity.User) error {
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r *fakeUserRepo) GetByID(id string, vis repository.Visibility) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	switch vis.Scope {
	case repository.ScopeAll:
	case repository.ScopeMine:
		if u.ID != vis.OwnerID {
			return nil, nil
		}
	default:
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(limit, offset int, vis repository.Visibility) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		switch vis.Scope {
		case repository.ScopeAll:
		case repository.ScopeMine:
			if u.ID != vis.OwnerID {
				continue
			}
		default:
			continue
		}
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountByRole(role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func newUserUC(repo *fakeUserRepo) *usecase.UserUseCase {
	return usecase.NewUserUseCase(repo, permission.NewDefaultRegistry())
}

func seedUser(repo *fakeUserRepo, id, email, role string) *entity.User {
	u := &entity.User{Email: email, FullName: "Usuario " + id, Role: role, IsActive: true}
	u.AssignID(id)
	u.Stamp(time.Now())
	repo.users[id] = u
	c := *u
	return &c
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

// El registro público (actor nil) siempre produce un cajero activo sin
// privilegios, aunque la petición pida otra cosa.
func TestUserCreate_RegistroPublicoFuerzaCajero(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUserUC(repo)

	out, err := uc.Create(nil, dto.CreateUserRequest{
		Email:       "nuevo@tienda.com",
		Password:    "secreta123",
		FullName:    "Nuevo",
		Role:        entity.RoleAdmin,
		IsSuperuser: true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCashier, out.Role)
	assert.False(t, out.IsSuperuser)
	assert.True(t, out.IsActive)

	stored := repo.users[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.HashedPassword, "nunca en plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("secreta123")))
}

// Administrador crea con el rol pedido; el email duplicado se rechaza.
func TestUserCreate_AdministrativoYEmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "u-1", "ya@tienda.com", entity.RoleCashier)
	uc := newUserUC(repo)
	admin := actorWithRole(entity.RoleAdmin)

	out, err := uc.Create(admin, dto.CreateUserRequest{
		Email:    "gerente@tienda.com",
		Password: "secreta123",
		FullName: "Gerente",
		Role:     entity.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)

	_, err = uc.Create(admin, dto.CreateUserRequest{
		Email:    "ya@tienda.com",
		Password: "secreta123",
		FullName: "Repetido",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// El manager no tiene users:create: solo lectura de usuarios.
func TestUserCreate_ManagerSinPermiso(t *testing.T) {
	uc := newUserUC(newFakeUserRepo())

	_, err := uc.Create(actorWithRole(entity.RoleManager), dto.CreateUserRequest{
		Email:    "x@tienda.com",
		Password: "secreta123",
		FullName: "X",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserCreate_CamposObligatorios(t *testing.T) {
	uc := newUserUC(newFakeUserRepo())

	_, err := uc.Create(nil, dto.CreateUserRequest{Email: "x@tienda.com", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibilidad
// ──────────────────────────────────────────────────────────────────────────────

// Sin users:read cada uno se ve solo a sí mismo; otro usuario es
// indistinguible de uno inexistente.
func TestUserGetByID_CajeroSoloSeVeASiMismo(t *testing.T) {
	repo := newFakeUserRepo()
	me := seedUser(repo, "u-1", "yo@tienda.com", entity.RoleCashier)
	seedUser(repo, "u-2", "otro@tienda.com", entity.RoleCashier)
	uc := newUserUC(repo)

	out, err := uc.GetByID(me, "u-1")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "yo@tienda.com", out.Email)

	out, err = uc.GetByID(me, "u-2")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUserList_PorRol(t *testing.T) {
	repo := newFakeUserRepo()
	me := seedUser(repo, "u-1", "yo@tienda.com", entity.RoleCashier)
	seedUser(repo, "u-2", "otro@tienda.com", entity.RoleCashier)
	manager := seedUser(repo, "u-3", "gerente@tienda.com", entity.RoleManager)
	uc := newUserUC(repo)

	mine, err := uc.List(me, 100, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "u-1", mine[0].ID)

	all, err := uc.List(manager, 100, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "users:read ve a todos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización y borrado
// ──────────────────────────────────────────────────────────────────────────────

// Cualquiera puede editarse a sí mismo; el password presente se re-hashea.
func TestUserUpdate_AutoEdicionRehashea(t *testing.T) {
	repo := newFakeUserRepo()
	me := seedUser(repo, "u-1", "yo@tienda.com", entity.RoleCashier)
	repo.users["u-1"].HashedPassword = "hash-viejo"
	uc := newUserUC(repo)

	name := "Nombre Nuevo"
	pass := "otra-clave-9"
	out, err := uc.Update(me, "u-1", dto.UpdateUserRequest{FullName: &name, Password: &pass})
	require.NoError(t, err)

	assert.Equal(t, "Nombre Nuevo", out.FullName)
	stored := repo.users["u-1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte(pass)))
}

// Editar a otro requiere users:update; cambiar a un email tomado es 409.
func TestUserUpdate_OtroUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	me := seedUser(repo, "u-1", "yo@tienda.com", entity.RoleCashier)
	seedUser(repo, "u-2", "otro@tienda.com", entity.RoleCashier)
	admin := seedUser(repo, "a-1", "admin@tienda.com", entity.RoleAdmin)
	uc := newUserUC(repo)

	name := "Hackeado"
	_, err := uc.Update(me, "u-2", dto.UpdateUserRequest{FullName: &name})
	require.NoError(t, err, "invisible")
	assert.Equal(t, "Usuario u-2", repo.users["u-2"].FullName, "sin users:read el objetivo ni se ve")

	taken := "yo@tienda.com"
	_, err = uc.Update(admin, "u-2", dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	free := "libre@tienda.com"
	out, err := uc.Update(admin, "u-2", dto.UpdateUserRequest{Email: &free})
	require.NoError(t, err)
	assert.Equal(t, "libre@tienda.com", out.Email)
}

// Cambiar el rol exige users:update incluso en auto-edición: el cajero no
// puede autopromoverse; el admin sí reasigna roles ajenos.
func TestUserUpdate_RolRequiereUsersUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	me := seedUser(repo, "u-1", "yo@tienda.com", entity.RoleCashier)
	seedUser(repo, "u-2", "otro@tienda.com", entity.RoleCashier)
	admin := seedUser(repo, "a-1", "admin@tienda.com", entity.RoleAdmin)
	uc := newUserUC(repo)

	promoted := entity.RoleAdmin
	_, err := uc.Update(me, "u-1", dto.UpdateUserRequest{Role: &promoted})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.RoleCashier, repo.users["u-1"].Role, "el rol no cambia")

	// Repetir el rol actual no es una escalada: la auto-edición pasa.
	same := entity.RoleCashier
	name := "Nombre Nuevo"
	_, err = uc.Update(me, "u-1", dto.UpdateUserRequest{Role: &same, FullName: &name})
	require.NoError(t, err)

	toManager := entity.RoleManager
	out, err := uc.Update(admin, "u-2", dto.UpdateUserRequest{Role: &toManager})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.Equal(t, entity.RoleManager, repo.users["u-2"].Role)
}

// Nadie se borra a sí mismo, ni siquiera el admin.
func TestUserDelete_AutoBorradoProhibido(t *testing.T) {
	repo := newFakeUserRepo()
	admin := seedUser(repo, "a-1", "admin@tienda.com", entity.RoleAdmin)
	seedUser(repo, "u-1", "yo@tienda.com", entity.RoleCashier)
	uc := newUserUC(repo)

	_, err := uc.Delete(admin, "a-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Delete(admin, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.ID)
	assert.NotContains(t, repo.users, "u-1")
}
