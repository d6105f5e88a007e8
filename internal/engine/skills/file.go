package skills

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-village/internal/entities"
	"github.com/KirkDiggler/rpg-village/internal/errors"
)

// FileSpec is the YAML layout of a catalog file
type FileSpec struct {
	Skills []SkillSpec `yaml:"skills"`
}

// SkillSpec is one skill as written in YAML. Which effect fields apply
// depends on Type.
type SkillSpec struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Icon           string   `yaml:"icon"`
	Type           string   `yaml:"type"`
	Cooldown       float64  `yaml:"cooldown"`
	ManaCost       float64  `yaml:"mana_cost"`
	Range          float64  `yaml:"range"`
	Damage         *int     `yaml:"damage,omitempty"`
	Amount         *float64 `yaml:"amount,omitempty"`
	Utility        string   `yaml:"utility,omitempty"`
	RequiresTarget bool     `yaml:"requires_target,omitempty"`
}

// LoadFile reads a YAML catalog from disk
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read skill catalog %s", path)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid skill catalog %s", path)
	}
	return c, nil
}

// Parse builds a catalog from YAML bytes
func Parse(data []byte) (*Catalog, error) {
	var spec FileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to unmarshal skill catalog")
	}

	defs := make([]*entities.Skill, 0, len(spec.Skills))
	for _, ss := range spec.Skills {
		def, err := ss.toSkill()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return New(defs)
}

// Marshal renders the catalog back to YAML
func Marshal(c *Catalog) ([]byte, error) {
	spec := FileSpec{}
	for _, sk := range c.List() {
		spec.Skills = append(spec.Skills, fromSkill(sk))
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal skill catalog")
	}
	return data, nil
}

func (ss SkillSpec) toSkill() (*entities.Skill, error) {
	def := &entities.Skill{
		ID:          ss.ID,
		Name:        ss.Name,
		Description: ss.Description,
		Icon:        ss.Icon,
		Cooldown:    ss.Cooldown,
		ManaCost:    ss.ManaCost,
		Range:       ss.Range,
	}

	switch entities.SkillType(ss.Type) {
	case entities.SkillTypeAttack:
		if ss.Damage == nil {
			return nil, errors.InvalidArgumentf("attack skill %s needs damage", ss.ID)
		}
		def.Effect = entities.AttackEffect{Damage: *ss.Damage}
	case entities.SkillTypeHeal:
		if ss.Amount == nil {
			return nil, errors.InvalidArgumentf("heal skill %s needs amount", ss.ID)
		}
		def.Effect = entities.HealEffect{Amount: *ss.Amount}
	case entities.SkillTypeUtility:
		def.Effect = entities.UtilityEffect{
			Kind:           entities.UtilityKind(ss.Utility),
			RequiresTarget: ss.RequiresTarget,
		}
	case entities.SkillTypeDefense:
		def.Effect = entities.DefenseEffect{}
	default:
		return nil, errors.InvalidArgumentf("skill %s has unknown type %q", ss.ID, ss.Type)
	}

	if ss.Type != string(entities.SkillTypeAttack) && ss.Damage != nil {
		return nil, errors.InvalidArgumentf("skill %s of type %s cannot set damage", ss.ID, ss.Type)
	}
	if ss.Type != string(entities.SkillTypeHeal) && ss.Amount != nil {
		return nil, errors.InvalidArgumentf("skill %s of type %s cannot set amount", ss.ID, ss.Type)
	}

	return def, nil
}

func fromSkill(sk *entities.Skill) SkillSpec {
	ss := SkillSpec{
		ID:          sk.ID,
		Name:        sk.Name,
		Description: sk.Description,
		Icon:        sk.Icon,
		Type:        string(sk.Type()),
		Cooldown:    sk.Cooldown,
		ManaCost:    sk.ManaCost,
		Range:       sk.Range,
	}

	switch e := sk.Effect.(type) {
	case entities.AttackEffect:
		dmg := e.Damage
		ss.Damage = &dmg
	case entities.HealEffect:
		amt := e.Amount
		ss.Amount = &amt
	case entities.UtilityEffect:
		ss.Utility = string(e.Kind)
		ss.RequiresTarget = e.RequiresTarget
	}

	return ss
}
