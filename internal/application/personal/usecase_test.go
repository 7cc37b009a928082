package personal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmolina/avicola-api/internal/application/apptest"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/application/personal"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/pkg/reloj"
)

const (
	adminID     = "usr-admin"
	galponeroID = "usr-galponero"
)

type personalFixture struct {
	uc          *personal.PersonalUseCase
	usuarios    *apptest.UsuarioMem
	asistencias *apptest.AsistenciaMem
	ahora       time.Time
}

// nuevaFixture arma un plantel con un único admin activo y un galponero.
func nuevaFixture(t *testing.T) *personalFixture {
	t.Helper()
	ahora := time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC)
	clk := reloj.Fijo(ahora)

	usuarios := apptest.NewUsuarioMem()
	require.NoError(t, usuarios.Create(&entity.Usuario{
		ID: adminID, Nombre: "Marta", Email: "marta@avicola.local",
		Rol: entity.RolAdmin, Activo: true,
	}))
	require.NoError(t, usuarios.Create(&entity.Usuario{
		ID: galponeroID, Nombre: "Raúl", Email: "raul@avicola.local",
		Rol: entity.RolGalponero, Activo: true,
	}))

	asistencias := apptest.NewAsistenciaMem()
	uc := personal.NewPersonalUseCase(usuarios, asistencias, clk)
	return &personalFixture{uc: uc, usuarios: usuarios, asistencias: asistencias, ahora: ahora}
}

func TestCreateEmpleado_HasheaPassword(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.CreateEmpleado(context.Background(), dto.CreateEmpleadoRequest{
		Nombre:   "Carla",
		DNI:      "30111222",
		Email:    "Carla@Avicola.Local",
		Password: "secreto123",
		Rol:      entity.RolVendedor,
	})
	require.NoError(t, err)
	assert.Equal(t, "carla@avicola.local", out.Email)
	assert.True(t, out.Activo)

	u, err := f.usuarios.GetByID(out.ID)
	require.NoError(t, err)
	require.NotEqual(t, "secreto123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto123")))
}

func TestCreateEmpleado_Validaciones(t *testing.T) {
	f := nuevaFixture(t)

	// Password corta.
	_, err := f.uc.CreateEmpleado(context.Background(), dto.CreateEmpleadoRequest{
		Nombre: "Carla", Email: "carla@avicola.local", Password: "corta", Rol: entity.RolVendedor,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Rol inexistente.
	_, err = f.uc.CreateEmpleado(context.Background(), dto.CreateEmpleadoRequest{
		Nombre: "Carla", Email: "carla@avicola.local", Password: "secreto123", Rol: "gerente",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Email ya registrado, sin importar mayúsculas.
	_, err = f.uc.CreateEmpleado(context.Background(), dto.CreateEmpleadoRequest{
		Nombre: "Otra Marta", Email: "MARTA@avicola.local", Password: "secreto123", Rol: entity.RolOficina,
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateEmpleado_UltimoAdminNoSeDegrada(t *testing.T) {
	f := nuevaFixture(t)

	rol := entity.RolOficina
	_, err := f.uc.UpdateEmpleado(context.Background(), adminID, dto.UpdateEmpleadoRequest{Rol: &rol})
	require.ErrorIs(t, err, domain.ErrUltimoAdmin)

	inactivo := false
	_, err = f.uc.UpdateEmpleado(context.Background(), adminID, dto.UpdateEmpleadoRequest{Activo: &inactivo})
	require.ErrorIs(t, err, domain.ErrUltimoAdmin)

	// Con un segundo admin activo la degradación pasa.
	require.NoError(t, f.usuarios.Create(&entity.Usuario{
		ID: "usr-admin-2", Nombre: "Pedro", Email: "pedro@avicola.local",
		Rol: entity.RolAdmin, Activo: true,
	}))
	out, err := f.uc.UpdateEmpleado(context.Background(), adminID, dto.UpdateEmpleadoRequest{Rol: &rol})
	require.NoError(t, err)
	assert.Equal(t, entity.RolOficina, out.Rol)
}

func TestDeleteEmpleado_UltimoAdmin(t *testing.T) {
	f := nuevaFixture(t)

	err := f.uc.DeleteEmpleado(context.Background(), adminID)
	require.ErrorIs(t, err, domain.ErrUltimoAdmin)

	// Un empleado común se borra sin más.
	require.NoError(t, f.uc.DeleteEmpleado(context.Background(), galponeroID))
	_, err = f.uc.GetEmpleado(context.Background(), galponeroID)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegistrarAsistencia_UnaPorDia(t *testing.T) {
	f := nuevaFixture(t)

	out, err := f.uc.RegistrarAsistencia(context.Background(), dto.RegistrarAsistenciaRequest{
		UsuarioID: galponeroID,
		Presente:  true,
	})
	require.NoError(t, err)
	// La fecha se normaliza al día, sin hora.
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), out.Fecha)

	_, err = f.uc.RegistrarAsistencia(context.Background(), dto.RegistrarAsistenciaRequest{
		UsuarioID: galponeroID,
		Presente:  false,
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMarcarAusentes_EsIdempotente(t *testing.T) {
	f := nuevaFixture(t)

	// El galponero ya registró presencia hoy; solo falta el admin.
	_, err := f.uc.RegistrarAsistencia(context.Background(), dto.RegistrarAsistenciaRequest{
		UsuarioID: galponeroID,
		Presente:  true,
	})
	require.NoError(t, err)

	marcados, err := f.uc.MarcarAusentes(context.Background(), f.ahora)
	require.NoError(t, err)
	assert.Equal(t, 1, marcados)

	// Una segunda corrida el mismo día no duplica nada.
	marcados, err = f.uc.MarcarAusentes(context.Background(), f.ahora)
	require.NoError(t, err)
	assert.Equal(t, 0, marcados)

	dia, err := f.uc.AsistenciasDelDia(context.Background(), f.ahora)
	require.NoError(t, err)
	assert.Len(t, dia, 2)
}

func TestEstadisticasMensuales(t *testing.T) {
	f := nuevaFixture(t)

	registrar := func(dia int, presente, justificada bool, motivo string) {
		fecha := time.Date(2025, 6, dia, 0, 0, 0, 0, time.UTC)
		_, err := f.uc.RegistrarAsistencia(context.Background(), dto.RegistrarAsistenciaRequest{
			UsuarioID:      galponeroID,
			Fecha:          &fecha,
			Presente:       presente,
			MotivoAusencia: motivo,
			Justificada:    justificada,
		})
		require.NoError(t, err)
	}
	registrar(2, true, false, "")
	registrar(3, true, false, "")
	registrar(4, false, true, "médico")
	registrar(5, false, false, "")
	// Otro mes: no cuenta.
	otroMes := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.RegistrarAsistencia(context.Background(), dto.RegistrarAsistenciaRequest{
		UsuarioID: galponeroID, Fecha: &otroMes, Presente: true,
	})
	require.NoError(t, err)

	stats, err := f.uc.EstadisticasMensuales(context.Background(), galponeroID, 2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.DiasPresente)
	assert.Equal(t, 1, stats.AusenciasJustificadas)
	assert.Equal(t, 1, stats.AusenciasInjustificadas)

	_, err = f.uc.EstadisticasMensuales(context.Background(), galponeroID, 2025, time.Month(13))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
