package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"toorrii_site/services/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGetter struct {
	mock.Mock
}

func (m *MockGetter) Get(ctx context.Context, path string, out any) error {
	args := m.Called(path)
	if body, ok := args.Get(0).(string); ok && body != "" {
		if err := json.Unmarshal([]byte(body), out); err != nil {
			return err
		}
	}
	return args.Error(1)
}

const partnersJSON = `[
	{"partenaire_id": "p1", "nom_partenaire": "Pharmacie Centrale", "priorite_affichage": 1},
	{"id": 42, "nom_partenaire": "Clinique El Amel", "priorite_affichage": 2},
	{"partenaire_id": "42x", "id": 7, "nom_partenaire": "Banque", "priorite_affichage": 3}
]`

func TestGetPartnerByID(t *testing.T) {
	t.Run("Matches partenaire_id", func(t *testing.T) {
		getter := new(MockGetter)
		getter.On("Get", PartnersPath).Return(partnersJSON, nil).Once()

		p, err := NewPartnerService(getter).GetPartnerByID(context.Background(), "p1")

		require.NoError(t, err)
		assert.Equal(t, "Pharmacie Centrale", p.Name)
		getter.AssertExpectations(t)
	})

	t.Run("Falls back to numeric id", func(t *testing.T) {
		getter := new(MockGetter)
		getter.On("Get", PartnersPath).Return(partnersJSON, nil).Once()

		p, err := NewPartnerService(getter).GetPartnerByID(context.Background(), "42")

		require.NoError(t, err)
		assert.Equal(t, "Clinique El Amel", p.Name)
	})

	t.Run("Numeric id of a partner that also has partenaire_id", func(t *testing.T) {
		getter := new(MockGetter)
		getter.On("Get", PartnersPath).Return(partnersJSON, nil).Once()

		p, err := NewPartnerService(getter).GetPartnerByID(context.Background(), "7")

		require.NoError(t, err)
		assert.Equal(t, "Banque", p.Name)
	})

	t.Run("No match is NotFoundError", func(t *testing.T) {
		getter := new(MockGetter)
		getter.On("Get", PartnersPath).Return(partnersJSON, nil).Once()

		_, err := NewPartnerService(getter).GetPartnerByID(context.Background(), "p404")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPartnerNotFound))
		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "p404", nf.ID)
	})

	t.Run("Client errors pass through unmodified", func(t *testing.T) {
		upstream := &api.HTTPError{Path: PartnersPath, StatusCode: http.StatusBadGateway}
		getter := new(MockGetter)
		getter.On("Get", PartnersPath).Return("", upstream).Once()

		_, err := NewPartnerService(getter).GetPartnerByID(context.Background(), "p1")

		assert.Same(t, upstream, err)
		assert.False(t, errors.Is(err, ErrPartnerNotFound))
	})
}

func TestFindPartner_EmptyList(t *testing.T) {
	_, err := FindPartner(nil, "p1")
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestDocumentServicesPassThrough(t *testing.T) {
	aboutUs := `{"titre":"Qui sommes-nous","contenu":"<p>Toorrii</p>","equipe":[{"nom":"A"}]}`
	privacy := `{"contenu":"<h2>Données</h2>","version":3}`
	terms := `[{"titre":"Conditions","sections":[]}]`

	getter := new(MockGetter)
	getter.On("Get", AboutUsPath).Return(aboutUs, nil)
	getter.On("Get", PrivacyPolicyPath).Return(privacy, nil)
	getter.On("Get", TermsOfServicePath).Return(terms, nil)

	svc := NewServices(getter)
	ctx := context.Background()

	gotAbout, err := svc.AboutUs.GetAboutUs(ctx)
	require.NoError(t, err)
	assert.Equal(t, aboutUs, string(gotAbout))

	gotPrivacy, err := svc.PrivacyPolicy.GetPrivacyPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, privacy, string(gotPrivacy))

	gotTerms, err := svc.TermsOfService.GetTermsOfService(ctx)
	require.NoError(t, err)
	assert.Equal(t, terms, string(gotTerms))

	getter.AssertExpectations(t)
}

func TestGetContactInfo(t *testing.T) {
	getter := new(MockGetter)
	getter.On("Get", ContactInfoPath).Return(`{"telephone":"+213 21 00 00 00","horaires":"8h - 16h"}`, nil)

	ci, err := NewContactInfoService(getter).GetContactInfo(context.Background())

	require.NoError(t, err)
	assert.Nil(t, ci.Email)
	require.NotNil(t, ci.Phone)
	assert.Equal(t, "+213 21 00 00 00", *ci.Phone)
	assert.Len(t, ci.Channels(), 2)
}

func TestServicesAgainstHTTPBackend(t *testing.T) {
	requests := map[string]int{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests[r.URL.Path]++
		switch r.URL.Path {
		case PartnersPath:
			fmt.Fprint(w, partnersJSON)
		case TermsOfServicePath:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := api.New(server.URL)
	require.NoError(t, err)
	svc := NewServices(client)

	partners, err := svc.Partners.GetPartners(context.Background())
	require.NoError(t, err)
	assert.Len(t, partners, 3)

	_, err = svc.Partners.GetPartnerByID(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 2, requests[PartnersPath])

	_, err = svc.TermsOfService.GetTermsOfService(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, api.StatusCode(err))
	assert.Equal(t, 1, requests[TermsOfServicePath])
}
