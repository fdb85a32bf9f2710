package service

import (
	"context"
	"strings"
	"testing"

	"hireboard/internal/domain"
	"hireboard/internal/repository"
	"hireboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CompanyService_OnePerOwner(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	store := &fakeStore{}
	companies := repository.NewCompanyRepository(db)
	svc := NewCompanyService(companies, repository.NewReviewRepository(db), store, "hireboard")
	employer := testutil.CreateUser(t, db, domain.RoleEmployer)
	actor := Actor{ID: employer.ID, Role: domain.RoleEmployer}

	c, err := svc.Create(ctx, actor, CompanyInput{Name: "Acme", Industry: "software", Website: "https://acme.example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, actor, CompanyInput{Name: "Acme 2"})
	assert.True(t, domain.IsKind(err, domain.KindConflict))

	_, err = svc.Update(ctx, Actor{ID: employer.ID + 100, Role: domain.RoleEmployer}, c.ID, CompanyInput{Name: "Hijacked"})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	updated, err := svc.UploadLogo(ctx, actor, c.ID, Upload{Filename: "logo.png", Size: 1024, Body: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Contains(t, updated.LogoURL, "hireboard/logos/")
	require.Len(t, store.uploads, 1)

	_, err = svc.UploadLogo(ctx, actor, c.ID, Upload{Filename: "logo.exe", Size: 10, Body: strings.NewReader("x")})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	list, err := svc.List(ctx, "acm", "", repository.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
}

func Test_ReviewService_DuplicateAndAnonymous(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	companies := repository.NewCompanyRepository(db)
	reviews := NewReviewService(repository.NewReviewRepository(db), companies)
	companySvc := NewCompanyService(companies, repository.NewReviewRepository(db), nil, "hireboard")
	employer := testutil.CreateUser(t, db, domain.RoleEmployer)
	seeker := testutil.CreateUser(t, db, domain.RoleJobSeeker)
	other := testutil.CreateUser(t, db, domain.RoleJobSeeker)
	c, err := companySvc.Create(ctx, Actor{ID: employer.ID, Role: domain.RoleEmployer}, CompanyInput{Name: "Acme"})
	require.NoError(t, err)

	_, err = reviews.Create(ctx, Actor{ID: employer.ID, Role: domain.RoleEmployer}, c.ID, ReviewInput{Rating: 5})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	seekerActor := Actor{ID: seeker.ID, Role: domain.RoleJobSeeker}
	rv, err := reviews.Create(ctx, seekerActor, c.ID, ReviewInput{Rating: 4, Title: "Good place", IsAnonymous: true})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, seekerActor, c.ID, ReviewInput{Rating: 1})
	assert.True(t, domain.IsKind(err, domain.KindDuplicateReview))
	_, err = reviews.Create(ctx, Actor{ID: other.ID, Role: domain.RoleJobSeeker}, c.ID, ReviewInput{Rating: 2})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, Actor{ID: other.ID, Role: domain.RoleJobSeeker}, c.ID, ReviewInput{Rating: 9})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	page, err := reviews.ListForCompany(ctx, c.ID, repository.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalReviews)
	assert.InDelta(t, 3.0, page.AverageRating, 0.001)
	for _, v := range page.Data {
		if v.ID == rv.ID {
			assert.Nil(t, v.Author)
			assert.Zero(t, v.UserID)
		} else {
			require.NotNil(t, v.Author)
			assert.Equal(t, other.Name, v.Author.Name)
		}
	}

	profile, err := companySvc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, profile.Rating.Count)

	err = reviews.Delete(ctx, Actor{ID: other.ID, Role: domain.RoleJobSeeker}, rv.ID)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	require.NoError(t, reviews.Delete(ctx, Actor{ID: 1, Role: domain.RoleAdmin}, rv.ID))
}
