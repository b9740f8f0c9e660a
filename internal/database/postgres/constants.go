package postgres

// SQL - activities
const (
	sqlSelectActivity = `
		SELECT player_id, action_type, resource_id, location_id,
		       started_at, ends_at, unit_seconds, units_claimed, bait_instance_id
		FROM vocational_activities
		WHERE player_id = $1
	`

	sqlSelectActivityForUpdate = sqlSelectActivity + ` FOR UPDATE`

	sqlSelectRunningActivities = `
		SELECT player_id, action_type, resource_id, location_id,
		       started_at, ends_at, unit_seconds, units_claimed, bait_instance_id
		FROM vocational_activities
		WHERE ends_at > $1 OR units_claimed < FLOOR(EXTRACT(EPOCH FROM (LEAST(ends_at, $1::timestamptz) - started_at)) / unit_seconds)
	`

	sqlInsertActivity = `
		INSERT INTO vocational_activities
			(player_id, action_type, resource_id, location_id,
			 started_at, ends_at, unit_seconds, units_claimed, bait_instance_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	sqlUpdateUnitsClaimed = `
		UPDATE vocational_activities SET units_claimed = $2 WHERE player_id = $1
	`

	sqlDeleteActivity = `DELETE FROM vocational_activities WHERE player_id = $1`
)

// SQL - inventories
const (
	sqlSelectInventoryForUpdate = `
		SELECT slots FROM inventories WHERE player_id = $1 FOR UPDATE
	`

	sqlUpsertInventory = `
		INSERT INTO inventories (player_id, slots, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (player_id) DO UPDATE
		SET slots = EXCLUDED.slots, updated_at = NOW()
	`
)

// SQL - catalog
const (
	sqlSelectResource = `
		SELECT id, action_type, output_item_id, yield_per_unit, xp_per_unit,
		       base_unit_seconds, min_level, rarity, required_bait_item_id
		FROM vocational_resources
		WHERE id = $1
	`

	sqlSelectAllResources = `
		SELECT id, action_type, output_item_id, yield_per_unit, xp_per_unit,
		       base_unit_seconds, min_level, rarity, required_bait_item_id
		FROM vocational_resources
		ORDER BY id
	`

	sqlSelectRequirements = `
		SELECT item_id, quantity_per_unit
		FROM vocational_requirements
		WHERE resource_id = $1
		ORDER BY item_id
	`

	sqlSelectAllRequirements = `
		SELECT resource_id, item_id, quantity_per_unit
		FROM vocational_requirements
		ORDER BY resource_id, item_id
	`

	// A resource with no location rows is available everywhere.
	sqlResourceAvailableAt = `
		SELECT NOT EXISTS (SELECT 1 FROM resource_locations WHERE resource_id = $1)
		    OR EXISTS (SELECT 1 FROM resource_locations WHERE resource_id = $1 AND location_id = $2)
	`

	sqlSelectItem = `
		SELECT id, internal_name, display_name, types FROM items WHERE id = $1
	`

	sqlSelectItemsByIDs = `
		SELECT id, internal_name, display_name, types FROM items WHERE id = ANY($1)
	`
)

// SQL - equipment
const (
	sqlSelectEquippedTool = `
		SELECT item_id, efficiency_pct
		FROM player_equipment
		WHERE player_id = $1 AND action_type = $2
	`
)

// SQL - skill ledger
const (
	sqlSelectTrackXP = `
		SELECT xp FROM skill_tracks WHERE player_id = $1 AND track_key = $2
	`

	sqlUpsertTrackXP = `
		INSERT INTO skill_tracks (player_id, track_key, xp)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, track_key) DO UPDATE
		SET xp = skill_tracks.xp + EXCLUDED.xp
		RETURNING xp
	`

	sqlAddPlayerXP = `
		UPDATE players SET level_xp = level_xp + $2, updated_at = NOW() WHERE id = $1
	`
)
