package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blackbirdsmud/blackbirds/internal/archetype"
	"github.com/blackbirdsmud/blackbirds/internal/character"
	"github.com/blackbirdsmud/blackbirds/internal/logger"
	"github.com/blackbirdsmud/blackbirds/internal/species"
)

// ErrCharacterNotFound is returned when a character lookup fails.
var ErrCharacterNotFound = errors.New("character not found")

// ErrNameTaken is returned when trying to create a character with a
// name that is already in use.
var ErrNameTaken = errors.New("character name already taken")

// Character represents a player character's persistent data.
type Character struct {
	ID          int64
	AccountID   int64
	Name        string
	Surname     string
	Age         int
	ApparentAge int
	Height      int
	Intro       string
	Description string

	PronounThey   string
	PronounThem   string
	PronounTheir  string
	PronounTheirs string

	Species   string
	Archetype string

	HP, MaxHP int
	EN, MaxEN int
	SC, MaxSC int
	XP, MaxXP int

	Money int
	Prone int

	HasBreasts       bool
	HasGenitals      bool
	CanCarryChild    bool
	HasFourArms      bool
	ExoskeletalLevel int

	FangDesc            string
	TailDesc            string
	BioluminescenceDesc string

	RoomID     string
	CreatedAt  time.Time
	LastPlayed *time.Time
}

const characterColumns = `id, account_id, name, surname, age, apparent_age, height, intro, description,
	pronoun_they, pronoun_them, pronoun_their, pronoun_theirs,
	species, archetype,
	hp, max_hp, en, max_en, sc, max_sc, xp, max_xp,
	money, prone,
	has_breasts, has_genitals, can_carry_child, has_four_arms, exoskeletal_level,
	fang_desc, tail_desc, bioluminescence_desc,
	room_id, created_at, last_played`

// CreateCharacter creates a new character for an account. Everything
// but the name starts at the pre-generation defaults; the schema
// supplies them.
func (d *Database) CreateCharacter(accountID int64, name, roomID string) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("character name cannot be empty")
	}

	id, err := d.insert(
		"INSERT INTO characters (account_id, name, room_id) VALUES (?, ?, ?)",
		"id",
		accountID, name, roomID,
	)
	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	return d.GetCharacterByID(id)
}

// GetCharacterByName retrieves a character by name (case-insensitive).
func (d *Database) GetCharacterByName(name string) (*Character, error) {
	row := d.db.QueryRow(
		d.qb.Build("SELECT "+characterColumns+" FROM characters WHERE name = ?"),
		name,
	)

	c, err := scanCharacterRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return c, nil
}

// GetCharacterByID retrieves a character by ID.
func (d *Database) GetCharacterByID(id int64) (*Character, error) {
	row := d.db.QueryRow(
		d.qb.Build("SELECT "+characterColumns+" FROM characters WHERE id = ?"),
		id,
	)

	c, err := scanCharacterRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return c, nil
}

// GetCharactersByAccount returns all characters belonging to an account.
func (d *Database) GetCharactersByAccount(accountID int64) ([]*Character, error) {
	rows, err := d.db.Query(
		d.qb.Build("SELECT "+characterColumns+" FROM characters WHERE account_id = ? ORDER BY name"),
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	var characters []*Character
	for rows.Next() {
		c, err := scanCharacterRows(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating characters: %w", err)
	}

	return characters, nil
}

// SaveCharacter writes all mutable character state back to the
// database. The name is included since chargen can rename; a collision
// with another character's name returns ErrNameTaken.
func (d *Database) SaveCharacter(c *Character) error {
	_, err := d.db.Exec(
		d.qb.Build(`UPDATE characters SET
			name = ?,
			surname = ?,
			age = ?,
			apparent_age = ?,
			height = ?,
			intro = ?,
			description = ?,
			pronoun_they = ?,
			pronoun_them = ?,
			pronoun_their = ?,
			pronoun_theirs = ?,
			species = ?,
			archetype = ?,
			hp = ?, max_hp = ?,
			en = ?, max_en = ?,
			sc = ?, max_sc = ?,
			xp = ?, max_xp = ?,
			money = ?,
			prone = ?,
			has_breasts = ?,
			has_genitals = ?,
			can_carry_child = ?,
			has_four_arms = ?,
			exoskeletal_level = ?,
			fang_desc = ?,
			tail_desc = ?,
			bioluminescence_desc = ?,
			room_id = ?,
			last_played = CURRENT_TIMESTAMP
		 WHERE id = ?`),
		c.Name, c.Surname, c.Age, c.ApparentAge, c.Height, c.Intro, c.Description,
		c.PronounThey, c.PronounThem, c.PronounTheir, c.PronounTheirs,
		c.Species, c.Archetype,
		c.HP, c.MaxHP, c.EN, c.MaxEN, c.SC, c.MaxSC, c.XP, c.MaxXP,
		c.Money, c.Prone,
		boolInt(c.HasBreasts), boolInt(c.HasGenitals), boolInt(c.CanCarryChild), boolInt(c.HasFourArms),
		c.ExoskeletalLevel,
		c.FangDesc, c.TailDesc, c.BioluminescenceDesc,
		c.RoomID,
		c.ID,
	)
	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

// DeleteCharacter removes a character.
func (d *Database) DeleteCharacter(characterID int64) error {
	result, err := d.db.Exec(
		d.qb.Build("DELETE FROM characters WHERE id = ?"),
		characterID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// CharacterNames returns every character name, sorted.
func (d *Database) CharacterNames() ([]string, error) {
	rows, err := d.db.Query("SELECT name FROM characters")
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan character name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating characters: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

// NameTaken reports whether a character name is already in use,
// case-insensitively. Chargen consults this during name validation.
// Lookup failures count as taken so a storage error can't hand out a
// duplicate name.
func (d *Database) NameTaken(name string) bool {
	var count int
	err := d.db.QueryRow(
		d.qb.Build("SELECT COUNT(*) FROM characters WHERE name = ?"),
		name,
	).Scan(&count)
	if err != nil {
		logger.Error("name lookup failed", "name", name, "error", err)
		return true
	}
	return count > 0
}

// ToRuntime builds the in-memory character entity from a stored record.
func (c *Character) ToRuntime() *character.Character {
	rt := character.New(c.Name)
	rt.ID = c.ID
	rt.Surname = c.Surname
	rt.Age = c.Age
	rt.ApparentAge = c.ApparentAge
	rt.Height = c.Height
	rt.Intro = c.Intro
	rt.Description = c.Description
	rt.SetPronouns(c.PronounThey, c.PronounThem, c.PronounTheir, c.PronounTheirs)
	rt.Species = species.Species(c.Species)
	rt.Archetype = archetype.Archetype(c.Archetype)
	rt.HP = character.Stat{Current: c.HP, Max: c.MaxHP}
	rt.EN = character.Stat{Current: c.EN, Max: c.MaxEN}
	rt.SC = character.Stat{Current: c.SC, Max: c.MaxSC}
	rt.XP = character.Stat{Current: c.XP, Max: c.MaxXP}
	rt.Money = c.Money
	rt.Prone = c.Prone
	rt.HasBreasts = c.HasBreasts
	rt.HasGenitals = c.HasGenitals
	rt.CanCarryChild = c.CanCarryChild
	rt.HasFourArms = c.HasFourArms
	rt.ExoskeletalLevel = c.ExoskeletalLevel
	rt.FangDesc = c.FangDesc
	rt.TailDesc = c.TailDesc
	rt.BioluminescenceDesc = c.BioluminescenceDesc
	return rt
}

// Snapshot copies the runtime entity's state back into the record for
// saving. The record keeps its own ID and account; name and room follow
// the runtime entity.
func (c *Character) Snapshot(rt *character.Character) {
	c.Name = rt.Name
	c.Surname = rt.Surname
	c.Age = rt.Age
	c.ApparentAge = rt.ApparentAge
	c.Height = rt.Height
	c.Intro = rt.Intro
	c.Description = rt.Description
	c.PronounThey = rt.They()
	c.PronounThem = rt.Them()
	c.PronounTheir = rt.Their()
	c.PronounTheirs = rt.Theirs()
	c.Species = string(rt.Species)
	c.Archetype = string(rt.Archetype)
	c.HP, c.MaxHP = rt.HP.Current, rt.HP.Max
	c.EN, c.MaxEN = rt.EN.Current, rt.EN.Max
	c.SC, c.MaxSC = rt.SC.Current, rt.SC.Max
	c.XP, c.MaxXP = rt.XP.Current, rt.XP.Max
	c.Money = rt.Money
	c.Prone = rt.Prone
	c.HasBreasts = rt.HasBreasts
	c.HasGenitals = rt.HasGenitals
	c.CanCarryChild = rt.CanCarryChild
	c.HasFourArms = rt.HasFourArms
	c.ExoskeletalLevel = rt.ExoskeletalLevel
	c.FangDesc = rt.FangDesc
	c.TailDesc = rt.TailDesc
	c.BioluminescenceDesc = rt.BioluminescenceDesc
	if room := rt.Location(); room != nil {
		c.RoomID = room.ID
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanCharacterRow(row *sql.Row) (*Character, error) {
	var c Character
	var lastPlayed sql.NullTime
	var hasBreasts, hasGenitals, canCarryChild, hasFourArms int

	err := row.Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Surname, &c.Age, &c.ApparentAge, &c.Height, &c.Intro, &c.Description,
		&c.PronounThey, &c.PronounThem, &c.PronounTheir, &c.PronounTheirs,
		&c.Species, &c.Archetype,
		&c.HP, &c.MaxHP, &c.EN, &c.MaxEN, &c.SC, &c.MaxSC, &c.XP, &c.MaxXP,
		&c.Money, &c.Prone,
		&hasBreasts, &hasGenitals, &canCarryChild, &hasFourArms, &c.ExoskeletalLevel,
		&c.FangDesc, &c.TailDesc, &c.BioluminescenceDesc,
		&c.RoomID, &c.CreatedAt, &lastPlayed,
	)
	if err != nil {
		return nil, err
	}

	c.HasBreasts = hasBreasts != 0
	c.HasGenitals = hasGenitals != 0
	c.CanCarryChild = canCarryChild != 0
	c.HasFourArms = hasFourArms != 0
	if lastPlayed.Valid {
		c.LastPlayed = &lastPlayed.Time
	}
	return &c, nil
}

func scanCharacterRows(rows *sql.Rows) (*Character, error) {
	var c Character
	var lastPlayed sql.NullTime
	var hasBreasts, hasGenitals, canCarryChild, hasFourArms int

	err := rows.Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Surname, &c.Age, &c.ApparentAge, &c.Height, &c.Intro, &c.Description,
		&c.PronounThey, &c.PronounThem, &c.PronounTheir, &c.PronounTheirs,
		&c.Species, &c.Archetype,
		&c.HP, &c.MaxHP, &c.EN, &c.MaxEN, &c.SC, &c.MaxSC, &c.XP, &c.MaxXP,
		&c.Money, &c.Prone,
		&hasBreasts, &hasGenitals, &canCarryChild, &hasFourArms, &c.ExoskeletalLevel,
		&c.FangDesc, &c.TailDesc, &c.BioluminescenceDesc,
		&c.RoomID, &c.CreatedAt, &lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan character: %w", err)
	}

	c.HasBreasts = hasBreasts != 0
	c.HasGenitals = hasGenitals != 0
	c.CanCarryChild = canCarryChild != 0
	c.HasFourArms = hasFourArms != 0
	if lastPlayed.Valid {
		c.LastPlayed = &lastPlayed.Time
	}
	return &c, nil
}
