// file: mappers/competition_mapper.go
package mappers

import (
	"hyperion/dto"
	"hyperion/models"
)

func MapCompetitionUserToResp(u models.CompetitionUser) dto.CompetitionUserResp {
	var category *string
	if u.SportCategory != nil {
		s := string(*u.SportCategory)
		category = &s
	}
	return dto.CompetitionUserResp{
		UserID:        u.UserID,
		EditionID:     u.EditionID,
		SchoolID:      u.SchoolID,
		IsAthlete:     u.IsAthlete,
		IsCameraman:   u.IsCameraman,
		IsPompom:      u.IsPompom,
		IsFanfare:     u.IsFanfare,
		IsVolunteer:   u.IsVolunteer,
		SportCategory: category,
		Validated:     u.Validated,
	}
}

func MapParticipantToResp(p models.CompetitionParticipant) dto.ParticipantResp {
	return dto.ParticipantResp{
		UserID:         p.UserID,
		SportID:        p.SportID,
		EditionID:      p.EditionID,
		SchoolID:       p.SchoolID,
		TeamID:         p.TeamID,
		Substitute:     p.Substitute,
		License:        p.License,
		IsLicenseValid: p.IsLicenseValid,
	}
}

func MapTeamToResp(t models.CompetitionTeam) dto.TeamResp {
	participants := make([]dto.ParticipantResp, 0, len(t.Members))
	for _, member := range t.Members {
		participants = append(participants, MapParticipantToResp(member))
	}
	return dto.TeamResp{
		ID:           t.ID,
		Name:         t.Name,
		EditionID:    t.EditionID,
		SchoolID:     t.SchoolID,
		SportID:      t.SportID,
		CaptainID:    t.CaptainID,
		CreatedAt:    t.CreatedAt,
		Participants: participants,
	}
}

func MapVariantToResp(v models.CompetitionProductVariant) dto.VariantResp {
	var schoolType, publicType *string
	if v.SchoolType != nil {
		s := string(*v.SchoolType)
		schoolType = &s
	}
	if v.PublicType != nil {
		s := string(*v.PublicType)
		publicType = &s
	}
	return dto.VariantResp{
		ID:          v.ID,
		ProductID:   v.ProductID,
		EditionID:   v.EditionID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Enabled:     v.Enabled,
		Unique:      v.Unique,
		SchoolType:  schoolType,
		PublicType:  publicType,
	}
}

func MapProductToResp(p models.CompetitionProduct) dto.ProductResp {
	variants := make([]dto.VariantResp, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, MapVariantToResp(v))
	}
	return dto.ProductResp{
		ID:          p.ID,
		EditionID:   p.EditionID,
		Name:        p.Name,
		Description: p.Description,
		Required:    p.Required,
		Variants:    variants,
	}
}

func MapPurchaseToResp(p models.CompetitionPurchase) dto.PurchaseResp {
	resp := dto.PurchaseResp{
		UserID:           p.UserID,
		ProductVariantID: p.ProductVariantID,
		EditionID:        p.EditionID,
		Quantity:         p.Quantity,
		Validated:        p.Validated,
		PurchasedOn:      p.PurchasedOn,
	}
	if p.ProductVariant != nil {
		v := MapVariantToResp(*p.ProductVariant)
		resp.ProductVariant = &v
	}
	return resp
}

func MapPaymentToResp(p models.CompetitionPayment) dto.PaymentResp {
	return dto.PaymentResp{
		ID:        p.ID,
		UserID:    p.UserID,
		EditionID: p.EditionID,
		Total:     p.Total,
		CreatedAt: p.CreatedAt,
	}
}

func MapGeneralQuotaToResp(q models.SchoolGeneralQuota) dto.GeneralQuotaResp {
	return dto.GeneralQuotaResp{
		SchoolID:                 q.SchoolID,
		EditionID:                q.EditionID,
		AthleteQuota:             q.AthleteQuota,
		CameramanQuota:           q.CameramanQuota,
		PompomQuota:              q.PompomQuota,
		FanfareQuota:             q.FanfareQuota,
		VolunteerQuota:           q.VolunteerQuota,
		AthleteCameramanQuota:    q.AthleteCameramanQuota,
		AthletePompomQuota:       q.AthletePompomQuota,
		AthleteFanfareQuota:      q.AthleteFanfareQuota,
		NonAthleteCameramanQuota: q.NonAthleteCameramanQuota,
		NonAthletePompomQuota:    q.NonAthletePompomQuota,
		NonAthleteFanfareQuota:   q.NonAthleteFanfareQuota,
	}
}

func MapSportQuotaToResp(q models.SchoolSportQuota) dto.SportQuotaResp {
	return dto.SportQuotaResp{
		SchoolID:         q.SchoolID,
		SportID:          q.SportID,
		EditionID:        q.EditionID,
		ParticipantQuota: q.ParticipantQuota,
		TeamQuota:        q.TeamQuota,
	}
}

func MapProductQuotaToResp(q models.SchoolProductQuota) dto.ProductQuotaResp {
	return dto.ProductQuotaResp{
		SchoolID:  q.SchoolID,
		ProductID: q.ProductID,
		EditionID: q.EditionID,
		Quota:     q.Quota,
	}
}
