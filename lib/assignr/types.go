package assignr

import (
	"encoding/json"
	"fmt"

	"refassist-backend/lib/reportform"
)

// boolString accepts the scheduling service's habit of encoding flags
// as the strings "true" and "false" on some resources and as real JSON
// booleans on others.
type boolString bool

func (b *boolString) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*b = false
	case bool:
		*b = boolString(v)
	case string:
		*b = boolString(reportform.ParseBool(v))
	default:
		return fmt.Errorf("cannot interpret %T as a flag", raw)
	}
	return nil
}

type pageMeta struct {
	Pages int `json:"pages"`
}

type sitesEnvelope struct {
	Embedded struct {
		Sites []struct {
			ID int64 `json:"id"`
		} `json:"sites"`
	} `json:"_embedded"`
}

type userResource struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	EmailAddresses []string   `json:"email_addresses"`
	Official       boolString `json:"official"`
	Assignor       boolString `json:"assignor"`
	Manager        boolString `json:"manager"`
	Active         boolString `json:"active"`
}

type usersEnvelope struct {
	Page     pageMeta `json:"page"`
	Embedded struct {
		Users []userResource `json:"users"`
	} `json:"_embedded"`
}

type assignmentResource struct {
	Accepted boolString `json:"accepted"`
	Position string     `json:"position"`
	Embedded struct {
		Official *struct {
			ID int64 `json:"id"`
		} `json:"official"`
	} `json:"_embedded"`
}

// gameResource keeps pointers for the fields a usable game record
// cannot do without, so a hole in the upstream payload is detectable
// and the record can be degraded as a whole.
type gameResource struct {
	ID        int64       `json:"id"`
	Date      *string     `json:"localized_date"`
	Time      *string     `json:"localized_time"`
	StartTime *string     `json:"start_time"`
	HomeTeam  *string     `json:"home_team"`
	AwayTeam  *string     `json:"away_team"`
	AgeGroup  *string     `json:"age_group"`
	League    *string     `json:"league"`
	Gender    *string     `json:"gender"`
	GameType  *string     `json:"game_type"`
	Cancelled *boolString `json:"cancelled"`
	SubVenue  string      `json:"subvenue"`
	Embedded  struct {
		Venue *struct {
			Name string `json:"name"`
		} `json:"venue"`
		Assignor *struct {
			ID int64 `json:"id"`
		} `json:"assignor"`
		Assignments []assignmentResource `json:"assignments"`
	} `json:"_embedded"`
}

// missingField names the first required field absent from the payload,
// or "" when the resource is complete.
func (g gameResource) missingField() string {
	switch {
	case g.Date == nil:
		return "localized_date"
	case g.Time == nil:
		return "localized_time"
	case g.StartTime == nil:
		return "start_time"
	case g.HomeTeam == nil:
		return "home_team"
	case g.AwayTeam == nil:
		return "away_team"
	case g.AgeGroup == nil:
		return "age_group"
	case g.League == nil:
		return "league"
	case g.Gender == nil:
		return "gender"
	case g.GameType == nil:
		return "game_type"
	case g.Cancelled == nil:
		return "cancelled"
	case g.Embedded.Venue == nil:
		return "venue"
	case g.Embedded.Assignor == nil:
		return "assignor"
	}
	return ""
}

type gamesEnvelope struct {
	Page     pageMeta `json:"page"`
	Embedded struct {
		Games []gameResource `json:"games"`
	} `json:"_embedded"`
}

type formValue struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type submissionResource struct {
	AuthorName string `json:"author_name"`
	Embedded   struct {
		Game struct {
			ID int64 `json:"id"`
		} `json:"game"`
		Values []formValue `json:"values"`
	} `json:"_embedded"`
	Links struct {
		GameReportWebview struct {
			Href string `json:"href"`
		} `json:"game_report_webview"`
	} `json:"_links"`
}

// formValues flattens a submission's key/value pairs for the form
// parser, with the author's name injected under its synthetic key.
func (s submissionResource) formValues() reportform.Values {
	values := make(reportform.Values, len(s.Embedded.Values)+1)
	for _, pair := range s.Embedded.Values {
		var decoded any
		if err := json.Unmarshal(pair.Value, &decoded); err != nil {
			decoded = nil
		}
		values[pair.Key] = decoded
	}
	values[reportform.KeyAuthorName] = s.AuthorName
	return values
}

type submissionsEnvelope struct {
	Page     pageMeta `json:"page"`
	Embedded struct {
		FormSubmissions []submissionResource `json:"form_submissions"`
	} `json:"_embedded"`
}

type availabilityResource struct {
	Date      string  `json:"date"`
	AllDay    *string `json:"all_day"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
}

type availabilityEnvelope struct {
	Embedded struct {
		Availability []availabilityResource `json:"availability"`
	} `json:"_embedded"`
}
