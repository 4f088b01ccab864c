package sqlinline

// Profile search mirrors the project variant: substring match over username
// and bio, no equality filters.
const QSearchProfiles = `--sql 5b6c7d8e-9f0a-4b1c-8d2e-3f4a5b6c7d8e
select user_id, username, bio, profile_photo, profile_banner_image, interests, social_links,
       created_at, updated_at
from user_profiles
where ($1::text = '' or username ilike '%' || $1::text || '%' or bio ilike '%' || $1::text || '%');
`

const QSelectProfileByUserID = `--sql 8d9e0f1a-2b3c-4d5e-af6b-7c8d9e0f1a2b
select user_id, username, bio, profile_photo, profile_banner_image, interests, social_links,
       created_at, updated_at
from user_profiles
where user_id = $1::uuid
limit 1;
`

// Upsert keyed on user_id: at most one profile per auth identity,
// last-write-wins.
const QUpsertProfile = `--sql 1f2e3d4c-5b6a-4f7e-8d9c-0b1a2f3e4d5c
insert into user_profiles(user_id, username, bio, profile_photo, profile_banner_image,
                          interests, social_links, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, nullif($4::text, ''), nullif($5::text, ''),
        $6::text[], $7::text[], now(), now())
on conflict (user_id) do update set
    username = excluded.username,
    bio = excluded.bio,
    profile_photo = excluded.profile_photo,
    profile_banner_image = excluded.profile_banner_image,
    interests = excluded.interests,
    social_links = excluded.social_links,
    updated_at = now()
returning user_id;
`
