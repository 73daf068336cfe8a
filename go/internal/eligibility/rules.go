package eligibility

import (
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
)

// DefaultDemandLimit is the number of demands allowed while the transaction window is closed.
const DefaultDemandLimit = 2

// DefaultAssistantCapacity bounds assistant managers per team.
const DefaultAssistantCapacity = 2

// CanBecomeReferee denies current referees and anyone attached to a team.
func CanBecomeReferee(u Standing) error {
	switch {
	case u.IsBot:
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.BotTarget, "bots cannot be referees")
	case u.IsReferee:
		return leagueerr.New(leagueerr.Conflict, leagueerr.AlreadyReferee, "user is already a referee")
	case u.IsManager():
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsManager, "managers cannot be referees")
	case u.IsAssistant():
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsAssistant, "assistant managers cannot be referees")
	case u.IsPlayer():
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsPlayer, "players cannot be referees")
	}
	return nil
}

// CanReceiveOffer checks a contract offer from callerID to u.
func CanReceiveOffer(callerID string, u Standing) error {
	switch {
	case u.UserID == callerID:
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.SelfTarget, "cannot offer a contract to yourself")
	case u.IsBot:
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.BotTarget, "cannot offer a contract to a bot")
	case u.IsReferee:
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsReferee, "referees cannot receive offers")
	case u.IsManager():
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsManager, "managers cannot receive offers")
	case u.IsAssistant():
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsAssistant, "assistant managers cannot receive offers")
	case u.IsPlayer():
		return leagueerr.New(leagueerr.Conflict, leagueerr.AlreadySigned, "player is already signed to a team")
	}
	return nil
}

// CanBeSignedDirectly is the admin bypass of the offer flow. An assistant
// manager may still be signed by the team they assist.
func CanBeSignedDirectly(u Standing, team models.Team) error {
	switch {
	case u.IsBot:
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.BotTarget, "cannot sign a bot")
	case u.IsReferee:
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsReferee, "referees cannot be signed as players")
	case u.IsManager():
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsManager, "managers cannot be signed as players")
	case u.IsPlayer():
		return leagueerr.New(leagueerr.Conflict, leagueerr.AlreadySigned, "player is already signed to a team")
	case u.IsAssistant() && !u.Assists(team.ID):
		return leagueerr.New(leagueerr.Conflict, leagueerr.AssistsOtherTeam, "user is assistant manager of another team")
	}
	return nil
}

// CanBecomeManager checks u taking over team.
func CanBecomeManager(u Standing, team models.Team) error {
	switch {
	case u.IsBot:
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.BotTarget, "bots cannot manage teams")
	case u.IsReferee:
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsReferee, "referees cannot manage teams")
	case team.HasManager():
		return leagueerr.New(leagueerr.Conflict, leagueerr.TeamHasManager, "%s already has a manager", team.Name)
	case u.IsManager():
		return leagueerr.New(leagueerr.Conflict, leagueerr.ManagesOtherTeam, "user already manages another team")
	case u.IsPlayer():
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsPlayer, "players cannot become managers")
	}
	return nil
}

// CanBecomeAssistantManager checks u joining team's staff, which currently
// holds assistants assistant managers out of capacity.
func CanBecomeAssistantManager(u Standing, team models.Team, assistants, capacity int) error {
	switch {
	case u.IsBot:
		return leagueerr.New(leagueerr.InvalidInput, leagueerr.BotTarget, "bots cannot be assistant managers")
	case u.IsReferee:
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsReferee, "referees cannot be assistant managers")
	case u.Assists(team.ID):
		return leagueerr.New(leagueerr.Conflict, leagueerr.AlreadyAssistant, "user already assists %s", team.Name)
	case assistants >= capacity:
		return leagueerr.New(leagueerr.Conflict, leagueerr.CapacityReached, "%s already has %d assistant managers", team.Name, capacity)
	case u.IsAssistant():
		return leagueerr.New(leagueerr.Conflict, leagueerr.AssistsOtherTeam, "user is assistant manager of another team")
	case u.IsPlayer() && !u.PlaysFor(team.ID):
		return leagueerr.New(leagueerr.Conflict, leagueerr.PlaysForOtherTeam, "user plays for another team")
	}
	return nil
}

// CanDemand checks a self-release. The demand limit only applies while the
// transaction window is closed.
func CanDemand(u Standing, windowOpen bool, limit int) error {
	switch {
	case u.IsManager():
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsManager, "managers cannot demand a release")
	case u.IsAssistant():
		return leagueerr.New(leagueerr.Conflict, leagueerr.IsAssistant, "assistant managers cannot demand a release")
	case u.PlayerMembership == nil:
		return leagueerr.New(leagueerr.NotFound, leagueerr.NoTeam, "player is not on a team")
	case !windowOpen && u.DemandUses >= limit:
		return leagueerr.New(leagueerr.Conflict, leagueerr.DemandLimitReached, "demand limit of %d reached", limit)
	}
	return nil
}

// CanArchiveFixtures requires an outstanding, unarchived posting.
func CanArchiveFixtures(p *models.FixturePosting) error {
	return requireLivePosting(p)
}

// CanRemoveFixtures requires an outstanding posting that is not archived.
func CanRemoveFixtures(p *models.FixturePosting) error {
	return requireLivePosting(p)
}

func requireLivePosting(p *models.FixturePosting) error {
	if p == nil {
		return leagueerr.New(leagueerr.NotFound, leagueerr.NoFixturesPosted, "no fixtures are currently posted")
	}
	if p.Archived {
		return leagueerr.New(leagueerr.Conflict, leagueerr.Protected, "posted fixtures are archived")
	}
	return nil
}
