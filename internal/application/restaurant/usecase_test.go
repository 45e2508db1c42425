package restaurant_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/restaurant"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/testutil/memory"
)

func seed(t *testing.T, store *memory.Store, ownerID int64, name, city, status string) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{
		OwnerID: ownerID, Name: name, Address: "Calle " + name, City: city,
		GoogleMapsLink: "https://maps.google.com/?q=" + name, Status: status,
	}
	require.NoError(t, store.Restaurants().Create(context.Background(), r))
	return r
}

func ownerP(id int64) access.Principal { return access.Principal{UserID: id, Role: entity.RoleOwner} }

func TestListPublic_SoloActivosOrdenadosYFiltrados(t *testing.T) {
	store := memory.NewStore()
	uc := restaurant.NewRestaurantUseCase(store.Restaurants())
	ctx := context.Background()
	seed(t, store, 1, "Zafra", "Bogotá", entity.RestaurantActive)
	seed(t, store, 2, "Arepas", "Medellín", entity.RestaurantActive)
	seed(t, store, 3, "Oculto", "Medellín", entity.RestaurantSuspended)

	all, err := uc.ListPublic(ctx, dto.RestaurantListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Arepas", all[0].Name)
	assert.Equal(t, "Zafra", all[1].Name)

	byCity, err := uc.ListPublic(ctx, dto.RestaurantListQuery{City: "medell"})
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	assert.Equal(t, "Arepas", byCity[0].Name)

	both, err := uc.ListPublic(ctx, dto.RestaurantListQuery{Search: "zaf", City: "medellín"})
	require.NoError(t, err)
	assert.Empty(t, both, "search y city se combinan con AND")

	byAddress, err := uc.ListPublic(ctx, dto.RestaurantListQuery{Search: "calle zafra"})
	require.NoError(t, err)
	assert.Len(t, byAddress, 1)
}

func TestGetPublic_SuspendidoEsNoEncontrado(t *testing.T) {
	store := memory.NewStore()
	uc := restaurant.NewRestaurantUseCase(store.Restaurants())
	ctx := context.Background()
	active := seed(t, store, 1, "Zafra", "Bogotá", entity.RestaurantActive)
	hidden := seed(t, store, 2, "Oculto", "Bogotá", entity.RestaurantSuspended)

	out, err := uc.GetPublic(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zafra", out.Name)
	assert.NotNil(t, out.Photos)

	_, err = uc.GetPublic(ctx, hidden.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetPublic(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func patch(t *testing.T, body string) dto.UpdateRestaurantRequest {
	t.Helper()
	var in dto.UpdateRestaurantRequest
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestUpdateMine_Coordenadas(t *testing.T) {
	store := memory.NewStore()
	uc := restaurant.NewRestaurantUseCase(store.Restaurants())
	ctx := context.Background()
	seed(t, store, 7, "Zafra", "Bogotá", entity.RestaurantActive)
	p := ownerP(7)

	_, err := uc.UpdateMine(ctx, p, patch(t, `{"latitude":"4.7110001234"}`))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve, "más de 6 decimales se rechaza, no se redondea")
	assert.Equal(t, "latitude", ve.Field)
	_, err = uc.UpdateMine(ctx, p, patch(t, `{"longitude":"-74.0721000"}`))
	require.ErrorAs(t, err, &ve, "los ceros finales también cuentan como decimales")
	assert.Equal(t, "longitude", ve.Field)

	out, err := uc.UpdateMine(ctx, p, patch(t, `{"latitude":"4.711","longitude":-74.0721}`))
	require.NoError(t, err)
	require.NotNil(t, out.Latitude)
	assert.Equal(t, "4.711000", *out.Latitude)
	assert.Equal(t, "-74.072100", *out.Longitude)

	// Campo ausente: no cambia.
	out, err = uc.UpdateMine(ctx, p, patch(t, `{"phone":"601"}`))
	require.NoError(t, err)
	assert.NotNil(t, out.Latitude)
	assert.Equal(t, "601", out.Phone)

	for _, clear := range []string{`""`, `"null"`, `"NULL"`, `null`} {
		_, err = uc.UpdateMine(ctx, p, patch(t, `{"latitude":"1.5"}`))
		require.NoError(t, err)
		out, err = uc.UpdateMine(ctx, p, patch(t, `{"latitude":`+clear+`}`))
		require.NoError(t, err)
		assert.Nil(t, out.Latitude, clear)
	}

	_, err = uc.UpdateMine(ctx, p, patch(t, `{"latitude":"abc"}`))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "latitude", ve.Field)

	_, err = uc.UpdateMine(ctx, p, patch(t, `{"longitude":"180.5"}`))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "longitude", ve.Field)
}

func TestUpdateMine_EnlaceVacioConservaYCamposFijos(t *testing.T) {
	store := memory.NewStore()
	uc := restaurant.NewRestaurantUseCase(store.Restaurants())
	ctx := context.Background()
	r := seed(t, store, 7, "Zafra", "Bogotá", entity.RestaurantActive)
	p := ownerP(7)

	out, err := uc.UpdateMine(ctx, p, patch(t, `{"google_maps_link":"","name":"Zafra 2","owner":99,"status":"SUSPENDED"}`))
	require.NoError(t, err)
	assert.Equal(t, r.GoogleMapsLink, out.GoogleMapsLink)
	assert.Equal(t, "Zafra 2", out.Name)
	assert.Equal(t, int64(7), out.Owner)
	assert.Equal(t, entity.RestaurantActive, out.Status)

	_, err = uc.UpdateMine(ctx, p, patch(t, `{"google_maps_link":"no-url"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMine_SinRestauranteOSinRol(t *testing.T) {
	store := memory.NewStore()
	uc := restaurant.NewRestaurantUseCase(store.Restaurants())
	ctx := context.Background()

	_, err := uc.GetMine(ctx, ownerP(7))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetMine(ctx, access.Principal{UserID: 7, Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFotos_AgregarYBorrarSoloPropias(t *testing.T) {
	store := memory.NewStore()
	uc := restaurant.NewRestaurantUseCase(store.Restaurants())
	ctx := context.Background()
	seed(t, store, 7, "Zafra", "Bogotá", entity.RestaurantActive)
	seed(t, store, 8, "Arepas", "Bogotá", entity.RestaurantActive)

	second, err := uc.AddPhoto(ctx, ownerP(7), dto.CreatePhotoRequest{ImageURL: "https://cdn.example.com/jpg/b.jpg", Caption: "Dining", Order: intPtr(2)})
	require.NoError(t, err)
	first, err := uc.AddPhoto(ctx, ownerP(7), dto.CreatePhotoRequest{ImageURL: "https://cdn.example.com/jpg/a.jpg", Caption: "Storefront"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Order)

	mine, err := uc.GetMine(ctx, ownerP(7))
	require.NoError(t, err)
	require.Len(t, mine.Photos, 2)
	assert.Equal(t, first.ID, mine.Photos[0].ID, "orden por (order, id)")

	_, err = uc.AddPhoto(ctx, ownerP(7), dto.CreatePhotoRequest{ImageURL: "https://cdn.example.com/x.jpg", Order: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddPhoto(ctx, ownerP(7), dto.CreatePhotoRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Otro propietario no puede borrarla: se reporta como inexistente.
	err = uc.DeletePhoto(ctx, ownerP(8), second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.DeletePhoto(ctx, ownerP(7), second.ID))
	err = uc.DeletePhoto(ctx, ownerP(7), second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func intPtr(v int) *int { return &v }
