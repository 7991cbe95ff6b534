package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// AddCandidateRequest is the body of POST /api/candidate/add.
type AddCandidateRequest struct {
	PositionAppliedFor   string `json:"position_applied_for" validate:"max=200"`
	FirstName            string `json:"first_name" validate:"max=100"`
	FatherOrHusbandName  string `json:"father_or_husband_name" validate:"max=100"`
	Surname              string `json:"surname" validate:"max=100"`
	CurrentAddress       string `json:"current_address"`
	PermanentAddress     string `json:"permanent_address"`
	Mobile               string `json:"mobile" validate:"omitempty,max=20"`
	Email                string `json:"email" validate:"omitempty,email"`
	DateOfBirth          string `json:"date_of_birth"`
	MaritalStatus        string `json:"marital_status"`
	Gender               string `json:"gender"`
	Religion             string `json:"religion"`
	Caste                string `json:"caste"`
	Category             string `json:"category"`
	Nationality          string `json:"nationality"`
	BloodGroup           string `json:"blood_group"`
	Allergies            string `json:"allergies"`
	Disability           string `json:"disability"`
	AadharCardNo         string `json:"aadhar_card_no"`
	PanNo                string `json:"pan_no"`
	ResumeURL            string `json:"resume_url" validate:"omitempty,url"`

	AcademicDetails   json.RawMessage `json:"academic_details"`
	ExperienceDetails json.RawMessage `json:"experience_details"`
	ComputerSkills    json.RawMessage `json:"computer_skills"`
	LanguagesKnown    json.RawMessage `json:"languages_known"`
	AdditionalInfo    json.RawMessage `json:"additional_info"`
	ReportingOfficers json.RawMessage `json:"reporting_officers"`
	SelfRatings       json.RawMessage `json:"self_ratings"`
	FamilyDetails     json.RawMessage `json:"family_details"`
}

func (r *AddCandidateRequest) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.Surname)
}

// AuthUserPayload is sent to the Supabase auth admin API.
type AuthUserPayload struct {
	Email        string       `json:"email"`
	Password     string       `json:"password"`
	EmailConfirm bool         `json:"email_confirm"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

type UserMetadata struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// CandidateProfilePayload is the candidate_profiles row inserted after the auth user exists.
// Structured fields are stored as serialized JSON text.
type CandidateProfilePayload struct {
	UserID              string  `json:"user_id"`
	PositionAppliedFor  *string `json:"position_applied_for"`
	FirstName           *string `json:"first_name"`
	FatherOrHusbandName *string `json:"father_or_husband_name"`
	Surname             *string `json:"surname"`
	CurrentAddress      *string `json:"current_address"`
	PermanentAddress    *string `json:"permanent_address"`
	Mobile              *string `json:"mobile"`
	Email               *string `json:"email"`
	DateOfBirth         *string `json:"date_of_birth"`
	MaritalStatus       *string `json:"marital_status"`
	Gender              *string `json:"gender"`
	Religion            *string `json:"religion"`
	Caste               *string `json:"caste"`
	Category            *string `json:"category"`
	Nationality         *string `json:"nationality"`
	BloodGroup          *string `json:"blood_group"`
	Allergies           *string `json:"allergies"`
	Disability          *string `json:"disability"`
	AadharCardNo        *string `json:"aadhar_card_no"`
	PanNo               *string `json:"pan_no"`
	ResumeURL           *string `json:"resume_url"`

	AcademicDetails   string `json:"academic_details"`
	ExperienceDetails string `json:"experience_details"`
	ComputerSkills    string `json:"computer_skills"`
	LanguagesKnown    string `json:"languages_known"`
	AdditionalInfo    string `json:"additional_info"`
	ReportingOfficers string `json:"reporting_officers"`
	SelfRatings       string `json:"self_ratings"`
	FamilyDetails     string `json:"family_details"`
}

// NewCandidateProfilePayload maps a request onto the profile row. The e-mail is
// taken from the request as sent, so a generated login e-mail is not stored on the profile.
func NewCandidateProfilePayload(userID string, r *AddCandidateRequest) CandidateProfilePayload {
	return CandidateProfilePayload{
		UserID:              userID,
		PositionAppliedFor:  nullable(r.PositionAppliedFor),
		FirstName:           nullable(r.FirstName),
		FatherOrHusbandName: nullable(r.FatherOrHusbandName),
		Surname:             nullable(r.Surname),
		CurrentAddress:      nullable(r.CurrentAddress),
		PermanentAddress:    nullable(r.PermanentAddress),
		Mobile:              nullable(r.Mobile),
		Email:               nullable(r.Email),
		DateOfBirth:         nullable(r.DateOfBirth),
		MaritalStatus:       nullable(r.MaritalStatus),
		Gender:              nullable(r.Gender),
		Religion:            nullable(r.Religion),
		Caste:               nullable(r.Caste),
		Category:            nullable(r.Category),
		Nationality:         nullable(r.Nationality),
		BloodGroup:          nullable(r.BloodGroup),
		Allergies:           nullable(r.Allergies),
		Disability:          nullable(r.Disability),
		AadharCardNo:        nullable(r.AadharCardNo),
		PanNo:               nullable(r.PanNo),
		ResumeURL:           nullable(r.ResumeURL),

		AcademicDetails:   jsonText(r.AcademicDetails, "[]"),
		ExperienceDetails: jsonText(r.ExperienceDetails, "[]"),
		ComputerSkills:    jsonText(r.ComputerSkills, "{}"),
		LanguagesKnown:    jsonText(r.LanguagesKnown, "{}"),
		AdditionalInfo:    jsonText(r.AdditionalInfo, "{}"),
		ReportingOfficers: jsonText(r.ReportingOfficers, "[]"),
		SelfRatings:       jsonText(r.SelfRatings, "{}"),
		FamilyDetails:     jsonText(r.FamilyDetails, "[]"),
	}
}

// SummarizeRequest is the body of POST /api/summarize.
type SummarizeRequest struct {
	Comments CommentList `json:"comments"`
}

// CommentList accepts either plain strings or the stored {round, comment}
// objects. Objects contribute their comment text, anything else is skipped.
type CommentList []string

func (l *CommentList) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("comments: invalid json")
	}
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*l = nil
		return nil
	}
	if !res.IsArray() {
		return errors.New("comments must be an array")
	}

	out := CommentList{}
	res.ForEach(func(_, v gjson.Result) bool {
		switch {
		case v.Type == gjson.String:
			out = append(out, v.String())
		case v.IsObject():
			if c := v.Get("comment"); c.Type == gjson.String {
				out = append(out, c.String())
			}
		}
		return true
	})
	*l = out
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// jsonText serializes a structured field, substituting fallback for absent or null values.
func jsonText(raw json.RawMessage, fallback string) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fallback
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return fallback
	}
	return buf.String()
}
