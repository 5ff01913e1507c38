package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/kayfabe/internal/config"
	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/internal/roster"
)

// rosterFile is the on-disk roster fixture format. Cross references use
// names; IDs are generated at load time.
type rosterFile struct {
	Competitors []competitorEntry `yaml:"competitors"`
	Referees    []refereeEntry    `yaml:"referees"`
	Feuds       []feudEntry       `yaml:"feuds"`
	Teams       []teamEntry       `yaml:"teams"`
	Staff       staffEntry        `yaml:"staff"`
}

type competitorEntry struct {
	Name       string   `yaml:"name"`
	Hometown   string   `yaml:"hometown"`
	Technical  float64  `yaml:"technical"`
	Brawling   float64  `yaml:"brawling"`
	Aerial     float64  `yaml:"aerial"`
	Psychology float64  `yaml:"psychology"`
	Charisma   float64  `yaml:"charisma"`
	Mic        float64  `yaml:"mic"`
	Stamina    float64  `yaml:"stamina"`
	Toughness  float64  `yaml:"toughness"`
	Morale     float64  `yaml:"morale"`
	Popularity float64  `yaml:"popularity"`
	Traits     []string `yaml:"traits"`
	Friends    []string `yaml:"friends"`
	Rivals     []string `yaml:"rivals"`
}

type refereeEntry struct {
	Name               string  `yaml:"name"`
	Experience         float64 `yaml:"experience"`
	Consistency        float64 `yaml:"consistency"`
	Strictness         float64 `yaml:"strictness"`
	Corruption         float64 `yaml:"corruption"`
	MainEventCapable   bool    `yaml:"main_event_capable"`
	HardcoreSpecialist bool    `yaml:"hardcore_specialist"`
	CompanyFavored     bool    `yaml:"company_favored"`
}

type feudEntry struct {
	Participants []string `yaml:"participants"`
	Heat         float64  `yaml:"heat"`
}

type teamEntry struct {
	Name      string   `yaml:"name"`
	Members   []string `yaml:"members"`
	Chemistry float64  `yaml:"chemistry"`
}

type staffEntry struct {
	RoadAgent *personEntry   `yaml:"road_agent"`
	Doctor    *personEntry   `yaml:"doctor"`
	Managers  []managerEntry `yaml:"managers"`
}

type personEntry struct {
	Name                string  `yaml:"name"`
	PsychologyInfluence float64 `yaml:"psychology_influence"`
	Medicine            float64 `yaml:"medicine"`
}

type managerEntry struct {
	Name     string   `yaml:"name"`
	Charisma float64  `yaml:"charisma"`
	Mic      float64  `yaml:"mic"`
	Clients  []string `yaml:"clients"`
}

// loadRoster builds a roster context from a YAML fixture. An empty path
// loads the embedded demo roster.
func loadRoster(cfg *config.Config, path string) (*roster.Context, error) {
	raw := []byte(defaultRosterYAML)
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read roster file: %w", err)
		}
	}

	var rf rosterFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}
	if len(rf.Competitors) == 0 {
		return nil, fmt.Errorf("roster file holds no competitors")
	}

	byName := make(map[string]*model.Competitor, len(rf.Competitors))
	competitors := make([]*model.Competitor, 0, len(rf.Competitors))
	traitsByKind := make(map[model.TraitKind]*model.Trait)
	var traits []*model.Trait

	for _, cs := range rf.Competitors {
		if _, dup := byName[cs.Name]; dup {
			return nil, fmt.Errorf("duplicate competitor %q", cs.Name)
		}
		c := &model.Competitor{
			ID:         types.NewCompetitorID(),
			Name:       cs.Name,
			Hometown:   cs.Hometown,
			Technical:  cs.Technical,
			Brawling:   cs.Brawling,
			Aerial:     cs.Aerial,
			Psychology: cs.Psychology,
			Charisma:   cs.Charisma,
			Mic:        cs.Mic,
			Stamina:    cs.Stamina,
			Toughness:  cs.Toughness,
			Morale:     cs.Morale,
			Popularity: cs.Popularity,
			Friends:    make(map[types.CompetitorID]struct{}),
			Rivals:     make(map[types.CompetitorID]struct{}),
			Traits:     make(map[types.TraitID]struct{}),
		}
		for _, kind := range cs.Traits {
			k := model.TraitKind(kind)
			t, ok := traitsByKind[k]
			if !ok {
				t = &model.Trait{ID: types.NewTraitID(), Name: kind, Kind: k}
				traitsByKind[k] = t
				traits = append(traits, t)
			}
			c.Traits[t.ID] = struct{}{}
		}
		byName[cs.Name] = c
		competitors = append(competitors, c)
	}

	resolve := func(name string) (*model.Competitor, error) {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown competitor %q", name)
		}
		return c, nil
	}

	// Relationships are declared one-way in the file; chemistry needs
	// mutual entries, so mirror them.
	for _, cs := range rf.Competitors {
		c := byName[cs.Name]
		for _, name := range cs.Friends {
			other, err := resolve(name)
			if err != nil {
				return nil, err
			}
			c.Friends[other.ID] = struct{}{}
			other.Friends[c.ID] = struct{}{}
		}
		for _, name := range cs.Rivals {
			other, err := resolve(name)
			if err != nil {
				return nil, err
			}
			c.Rivals[other.ID] = struct{}{}
			other.Rivals[c.ID] = struct{}{}
		}
	}

	referees := make([]*model.Referee, 0, len(rf.Referees))
	for _, rs := range rf.Referees {
		referees = append(referees, &model.Referee{
			ID:                 types.NewRefereeID(),
			Name:               rs.Name,
			Experience:         rs.Experience,
			Consistency:        rs.Consistency,
			Strictness:         rs.Strictness,
			Corruption:         rs.Corruption,
			MainEventCapable:   rs.MainEventCapable,
			HardcoreSpecialist: rs.HardcoreSpecialist,
			CompanyFavored:     rs.CompanyFavored,
			Active:             true,
		})
	}

	feuds := make([]*model.Feud, 0, len(rf.Feuds))
	for _, fs := range rf.Feuds {
		f := &model.Feud{
			ID:           types.NewFeudID(),
			Participants: make(map[types.CompetitorID]struct{}),
			Heat:         fs.Heat,
		}
		for _, name := range fs.Participants {
			c, err := resolve(name)
			if err != nil {
				return nil, err
			}
			f.Participants[c.ID] = struct{}{}
		}
		feuds = append(feuds, f)
	}

	teams := make([]*model.TagTeam, 0, len(rf.Teams))
	for _, ts := range rf.Teams {
		t := &model.TagTeam{
			ID:        types.NewTeamID(),
			Name:      ts.Name,
			Chemistry: ts.Chemistry,
		}
		for _, name := range ts.Members {
			c, err := resolve(name)
			if err != nil {
				return nil, err
			}
			t.Members = append(t.Members, c.ID)
			c.Teams = append(c.Teams, t.ID)
		}
		teams = append(teams, t)
	}

	opts := []roster.Option{
		roster.WithCompetitors(competitors...),
		roster.WithTraits(traits...),
		roster.WithFeuds(feuds...),
		roster.WithTeams(teams...),
	}
	if len(referees) > 0 {
		opts = append(opts, roster.WithReferees(referees...))
	}
	if rf.Staff.RoadAgent != nil {
		opts = append(opts, roster.WithRoadAgent(&model.Staff{
			ID:                  types.NewCompetitorID(),
			Name:                rf.Staff.RoadAgent.Name,
			Role:                model.RoleRoadAgent,
			PsychologyInfluence: rf.Staff.RoadAgent.PsychologyInfluence,
		}))
	}
	if rf.Staff.Doctor != nil {
		opts = append(opts, roster.WithDoctor(&model.Staff{
			ID:       types.NewCompetitorID(),
			Name:     rf.Staff.Doctor.Name,
			Role:     model.RoleDoctor,
			Medicine: rf.Staff.Doctor.Medicine,
		}))
	}

	rc := roster.New(cfg, opts...)

	for _, ms := range rf.Staff.Managers {
		mgr := &model.Staff{
			ID:       types.NewCompetitorID(),
			Name:     ms.Name,
			Role:     model.RoleManager,
			Charisma: ms.Charisma,
			Mic:      ms.Mic,
		}
		for _, name := range ms.Clients {
			c, err := resolve(name)
			if err != nil {
				return nil, err
			}
			rc.AssignManager(c.ID, mgr)
		}
	}

	return rc, nil
}

// defaultRosterYAML is the embedded demo promotion used when no roster
// file is supplied.
const defaultRosterYAML = `
competitors:
  - name: Jack Steel
    hometown: Pittsburgh
    technical: 82
    brawling: 74
    aerial: 55
    psychology: 80
    charisma: 78
    mic: 72
    stamina: 80
    toughness: 75
    morale: 70
    popularity: 84
    traits: [big_match_performer]
    rivals: [Diego Fuerte]
  - name: Diego Fuerte
    hometown: El Paso
    technical: 76
    brawling: 68
    aerial: 88
    psychology: 70
    charisma: 82
    mic: 64
    stamina: 84
    toughness: 60
    morale: 75
    popularity: 80
    traits: [crowd_favourite]
  - name: Mad Dog Briggs
    hometown: Detroit
    technical: 55
    brawling: 90
    aerial: 30
    psychology: 62
    charisma: 60
    mic: 55
    stamina: 70
    toughness: 92
    morale: 60
    popularity: 68
    traits: [hardcore_specialist]
  - name: The Professor
    hometown: Boston
    technical: 92
    brawling: 50
    aerial: 45
    psychology: 88
    charisma: 55
    mic: 70
    stamina: 72
    toughness: 58
    morale: 65
    popularity: 62
    traits: [submission_expert]
  - name: Johnny Venture
    hometown: Las Vegas
    technical: 64
    brawling: 60
    aerial: 72
    psychology: 58
    charisma: 90
    mic: 88
    stamina: 66
    toughness: 55
    morale: 80
    popularity: 77
    traits: [lazy_worker]
  - name: Tommy Venture
    hometown: Las Vegas
    technical: 68
    brawling: 62
    aerial: 75
    psychology: 60
    charisma: 72
    mic: 60
    stamina: 74
    toughness: 58
    morale: 72
    popularity: 65
    friends: [Johnny Venture]
  - name: Iron Ivan
    hometown: Chicago
    technical: 70
    brawling: 85
    aerial: 35
    psychology: 66
    charisma: 50
    mic: 45
    stamina: 78
    toughness: 88
    morale: 55
    popularity: 58
  - name: Ace Corbin
    hometown: Kansas City
    technical: 74
    brawling: 66
    aerial: 68
    psychology: 72
    charisma: 66
    mic: 62
    stamina: 76
    toughness: 64
    morale: 68
    popularity: 60
    traits: [chemistry_master]
    friends: [Jack Steel]

referees:
  - name: Earl Fairweather
    experience: 88
    consistency: 85
    strictness: 60
    corruption: 5
    main_event_capable: true
  - name: Duke Malone
    experience: 72
    consistency: 70
    strictness: 40
    corruption: 15
    hardcore_specialist: true
  - name: Sly Cordell
    experience: 65
    consistency: 55
    strictness: 30
    corruption: 70
    company_favored: true
  - name: Tim Natter
    experience: 25
    consistency: 35
    strictness: 75
    corruption: 10

feuds:
  - participants: [Jack Steel, Diego Fuerte]
    heat: 85
  - participants: [Mad Dog Briggs, Iron Ivan]
    heat: 60

teams:
  - name: The Venture Brothers
    members: [Johnny Venture, Tommy Venture]
    chemistry: 80

staff:
  road_agent:
    name: Skip Taylor
    psychology_influence: 75
  doctor:
    name: Dr. Ellen Brandt
    medicine: 80
  managers:
    - name: Sweet Lou Lombardi
      charisma: 85
      mic: 90
      clients: [Mad Dog Briggs]
`
