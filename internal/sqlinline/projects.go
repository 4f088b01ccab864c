package sqlinline

// Substring search variant: the text query matches case-insensitively as a
// substring of name or description. Equality filters are exact and
// case-sensitive. Blank parameters disable their clause so one statement
// serves every filter combination.
const QSearchProjects = `--sql 3f2b8a1c-9d4e-4f6a-b7c8-1a2b3c4d5e6f
select id, name, description, category, impact_areas, funding_platform, governance_model,
       website_url, contact_email, project_profile_image, project_banner_image, submitted_by,
       status, ai_summary, created_at
from projects
where ($1::text = '' or name ilike '%' || $1::text || '%' or description ilike '%' || $1::text || '%')
  and ($2::text = '' or category = $2::text)
  and ($3::text = '' or funding_platform = $3::text)
  and ($4::text = '' or governance_model = $4::text)
  and ($5::text = '' or status = $5::text);
`

const QSelectProjectByID = `--sql 7c1d2e3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f
select id, name, description, category, impact_areas, funding_platform, governance_model,
       website_url, contact_email, project_profile_image, project_banner_image, submitted_by,
       status, ai_summary, created_at
from projects
where id = $1::uuid
limit 1;
`

const QInsertProject = `--sql 9e8d7c6b-5a4f-4e3d-9c2b-1a0f9e8d7c6b
insert into projects(id, name, description, category, impact_areas, funding_platform, governance_model,
                     website_url, contact_email, project_profile_image, project_banner_image, submitted_by,
                     status, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text[], $5::text, $6::text,
        nullif($7::text, ''), nullif($8::text, ''), nullif($9::text, ''), nullif($10::text, ''),
        nullif($11::text, '')::uuid, 'Active', now())
returning id;
`

const QUpdateProjectSummary = `--sql 2a3b4c5d-6e7f-4a8b-9c0d-1e2f3a4b5c6d
update projects
set ai_summary = $2::text
where id = $1::uuid
returning id;
`
